package preview

import (
	"fmt"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
)

// Widget is the input kind used for a field in the edit panel.
type Widget int

const (
	WidgetText Widget = iota
	WidgetMultiline
)

func (w Widget) String() string {
	if w == WidgetMultiline {
		return "multiline"
	}
	return "text"
}

// Field is one editable content slot of a section.
type Field struct {
	Key      string
	Label    string
	Widget   Widget
	Fallback func(r *Resolver) string
}

// Schema lists the editable fields of one section. The renderers read their
// fallback copy from the same fields, so the edit panel and the page cannot
// drift apart.
type Schema struct {
	Section   string
	EditLabel string // locale key of the hover label
	Fields    []Field
}

// Header and footer are not toggleable but are editable.
const (
	SectionHeader = "header"
	SectionFooter = "footer"
)

// Fixed repeat counts for list-like sections.
const (
	featureCount     = 3
	serviceCount     = 3
	testimonialCount = 2
	pricingCount     = 3
	teamCount        = 4
	galleryCount     = 4
	blogCount        = 3
	faqCount         = 3
)

func tr(key string, args ...any) func(*Resolver) string {
	return func(r *Resolver) string { return locale.T(r.lang, key, args...) }
}

func lit(s string) func(*Resolver) string {
	return func(*Resolver) string { return s }
}

func text(key, label string, fallback func(*Resolver) string) Field {
	return Field{Key: key, Label: label, Widget: WidgetText, Fallback: fallback}
}

func multiline(key, label string, fallback func(*Resolver) string) Field {
	return Field{Key: key, Label: label, Widget: WidgetMultiline, Fallback: fallback}
}

// repeated builds n copies of a field group with index-suffixed keys.
func repeated(n int, build func(i int) []Field) []Field {
	var out []Field
	for i := 1; i <= n; i++ {
		out = append(out, build(i)...)
	}
	return out
}

var planKeys = []string{"preview.planBasic", "preview.planPro", "preview.planEnterprise"}
var planPrices = []string{"$29", "$59", "$99"}

var schemas = []Schema{
	{
		Section:   SectionHeader,
		EditLabel: "preview.editHeader",
		Fields: []Field{
			text("nav_title", "Site Title", siteTitle),
		},
	},
	{
		Section:   "hero",
		EditLabel: "preview.editHero",
		Fields: []Field{
			multiline("hero_title", "Headline", heroTitle),
			multiline("hero_subtitle", "Subheadline", heroSubtitle),
			text("hero_cta", "Button Text", tr("preview.heroCta")),
		},
	},
	{
		Section:   "features",
		EditLabel: "preview.editFeatures",
		Fields: append([]Field{
			text("features_title", "Section Title", tr("preview.featuresTitle")),
		}, repeated(featureCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("feature_%d_title", i), fmt.Sprintf("Feature %d Title", i), tr("preview.featureTitle", i)),
				multiline(fmt.Sprintf("feature_%d_desc", i), fmt.Sprintf("Feature %d Description", i), tr("preview.featureDesc")),
			}
		})...),
	},
	{
		Section:   "about",
		EditLabel: "preview.editAbout",
		Fields: []Field{
			text("about_title", "Title", tr("preview.aboutTitle")),
			multiline("about_desc", "Description", tr("preview.aboutDesc")),
		},
	},
	{
		Section:   "services",
		EditLabel: "preview.editServices",
		Fields: append([]Field{
			text("services_title", "Section Title", tr("preview.servicesTitle")),
		}, repeated(serviceCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("service_%d_title", i), fmt.Sprintf("Service %d Title", i), tr("preview.serviceTitle", i)),
				multiline(fmt.Sprintf("service_%d_desc", i), fmt.Sprintf("Service %d Description", i), tr("preview.serviceDesc")),
			}
		})...),
	},
	{
		Section:   "gallery",
		EditLabel: "preview.editGallery",
		Fields: []Field{
			text("gallery_title", "Title", func(r *Resolver) string { return locale.SectionLabel(r.lang, "gallery") }),
		},
	},
	{
		Section:   "testimonials",
		EditLabel: "preview.editTestimonials",
		Fields: append([]Field{
			text("testimonials_title", "Title", tr("preview.testimonialsTitle")),
		}, repeated(testimonialCount, func(i int) []Field {
			return []Field{
				multiline(fmt.Sprintf("testimonial_%d_text", i), fmt.Sprintf("Review %d", i), tr("preview.testimonialText")),
				text(fmt.Sprintf("testimonial_%d_name", i), fmt.Sprintf("Client %d", i), tr("preview.clientName", i)),
			}
		})...),
	},
	{
		Section:   "team",
		EditLabel: "preview.editTeam",
		Fields: append([]Field{
			text("team_title", "Title", tr("preview.teamTitle")),
		}, repeated(teamCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("member_%d_name", i), fmt.Sprintf("Member %d Name", i), tr("preview.memberName", i)),
				text(fmt.Sprintf("member_%d_role", i), fmt.Sprintf("Member %d Role", i), tr("preview.memberRole")),
			}
		})...),
	},
	{
		Section:   "pricing",
		EditLabel: "preview.editPricing",
		Fields: append([]Field{
			text("pricing_title", "Title", tr("preview.pricingTitle")),
		}, repeated(pricingCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("plan_%d_name", i), fmt.Sprintf("Plan %d Name", i), tr(planKeys[i-1])),
				text(fmt.Sprintf("price_%d", i), fmt.Sprintf("Plan %d Price", i), lit(planPrices[i-1])),
			}
		})...),
	},
	{
		Section:   "faq",
		EditLabel: "preview.editFaq",
		Fields: append([]Field{
			text("faq_title", "Title", tr("preview.faqTitle")),
		}, repeated(faqCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("faq_%d_q", i), fmt.Sprintf("Question %d", i), tr("preview.faqQuestion", i)),
				multiline(fmt.Sprintf("faq_%d_a", i), fmt.Sprintf("Answer %d", i), tr("preview.faqAnswer")),
			}
		})...),
	},
	{
		Section:   "blog",
		EditLabel: "preview.editBlog",
		Fields: append([]Field{
			text("blog_title", "Title", tr("preview.blogTitle")),
		}, repeated(blogCount, func(i int) []Field {
			return []Field{
				text(fmt.Sprintf("blog_%d_title", i), fmt.Sprintf("Article %d Title", i), tr("preview.blogArticle", i)),
				multiline(fmt.Sprintf("blog_%d_excerpt", i), fmt.Sprintf("Article %d Excerpt", i), tr("preview.blogExcerpt")),
			}
		})...),
	},
	{
		Section:   "newsletter",
		EditLabel: "preview.editNewsletter",
		Fields: []Field{
			text("newsletter_title", "Title", tr("preview.newsletterTitle")),
			multiline("newsletter_desc", "Description", tr("preview.newsletterDesc")),
			text("newsletter_btn", "Button Text", tr("preview.newsletterJoin")),
		},
	},
	{
		Section:   "contact",
		EditLabel: "preview.editContact",
		Fields: []Field{
			text("contact_title", "Title", tr("preview.contactTitle")),
			text("contact_btn", "Button Text", tr("preview.contactBtn")),
		},
	},
	{
		Section:   SectionFooter,
		EditLabel: "preview.editFooter",
		Fields: []Field{
			multiline("footer_desc", "Company Description", tr("preview.footerDesc")),
			text("footer_text", "Copyright Text", footerText),
			text("social_twitter", "Twitter URL", lit("#")),
			text("social_instagram", "Instagram URL", lit("#")),
			text("social_linkedin", "LinkedIn URL", lit("#")),
		},
	},
}

var (
	schemaBySection = make(map[string]Schema, len(schemas))
	fieldByKey      = make(map[string]Field)
)

func init() {
	for _, s := range schemas {
		schemaBySection[s.Section] = s
		for _, f := range s.Fields {
			fieldByKey[f.Key] = f
		}
	}
}

// SchemaFor returns the edit schema of a section.
func SchemaFor(section string) (Schema, bool) {
	s, ok := schemaBySection[section]
	return s, ok
}

// Schemas returns every section schema in page order.
func Schemas() []Schema {
	out := make([]Schema, len(schemas))
	copy(out, schemas)
	return out
}

func siteTitle(r *Resolver) string {
	if name := strings.TrimSpace(r.cfg.Name); name != "" {
		return name
	}
	return locale.T(r.lang, "preview.siteTitle")
}

func heroTitle(r *Resolver) string {
	if d := strings.TrimSpace(r.cfg.Description); d != "" {
		return strings.TrimSpace(strings.SplitN(d, ".", 2)[0])
	}
	return locale.T(r.lang, "preview.heroTitle")
}

func heroSubtitle(r *Resolver) string {
	if d := strings.TrimSpace(r.cfg.Description); d != "" {
		return d
	}
	topic := strings.TrimSpace(r.cfg.Topic)
	if topic == "" {
		topic = locale.T(r.lang, "preview.you")
	}
	return locale.T(r.lang, "preview.heroSubtitle", topic)
}

func footerText(r *Resolver) string {
	name := strings.TrimSpace(r.cfg.Name)
	if name == "" {
		name = locale.T(r.lang, "preview.footerBrand")
	}
	return locale.T(r.lang, "preview.footerText", name)
}
