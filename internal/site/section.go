package site

// Section identifies an optional page section that can be toggled in or out
// of a site's structure.
type Section string

// Section vocabulary. Header and footer are not part of it: they always render.
const (
	SectionHero         Section = "hero"
	SectionFeatures     Section = "features"
	SectionAbout        Section = "about"
	SectionServices     Section = "services"
	SectionGallery      Section = "gallery"
	SectionTestimonials Section = "testimonials"
	SectionTeam         Section = "team"
	SectionPricing      Section = "pricing"
	SectionFAQ          Section = "faq"
	SectionBlog         Section = "blog"
	SectionNewsletter   Section = "newsletter"
	SectionContact      Section = "contact"
)

var vocabulary = []Section{
	SectionHero,
	SectionFeatures,
	SectionAbout,
	SectionServices,
	SectionGallery,
	SectionTestimonials,
	SectionTeam,
	SectionPricing,
	SectionFAQ,
	SectionBlog,
	SectionNewsletter,
	SectionContact,
}

var known = func() map[Section]bool {
	m := make(map[Section]bool, len(vocabulary))
	for _, s := range vocabulary {
		m[s] = true
	}
	return m
}()

// Sections returns the closed section vocabulary in display order.
func Sections() []Section {
	out := make([]Section, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// IsKnown reports whether s belongs to the section vocabulary.
func (s Section) IsKnown() bool {
	return known[s]
}

func (s Section) String() string {
	return string(s)
}

// DefaultStructure is the starter section list of a fresh site.
func DefaultStructure() []Section {
	return []Section{SectionHero, SectionFeatures, SectionAbout, SectionServices, SectionContact}
}
