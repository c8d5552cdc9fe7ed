package testing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
)

// AssertText verifies the rendered output contains text.
func (lvt *LiveViewTest) AssertText(text string) *LiveViewTest {
	lvt.t.Helper()
	assert.Contains(lvt.t, lvt.rendered, text)
	return lvt
}

// AssertNoText verifies the rendered output does not contain text.
func (lvt *LiveViewTest) AssertNoText(text string) *LiveViewTest {
	lvt.t.Helper()
	assert.NotContains(lvt.t, lvt.rendered, text)
	return lvt
}

// AssertHasID verifies an element with the given id is rendered.
func (lvt *LiveViewTest) AssertHasID(id string) *LiveViewTest {
	lvt.t.Helper()
	assert.Contains(lvt.t, lvt.rendered, fmt.Sprintf(`id="%s"`, id))
	return lvt
}

// AssertHasClass verifies some element carries class.
func (lvt *LiveViewTest) AssertHasClass(class string) *LiveViewTest {
	lvt.t.Helper()
	pattern := fmt.Sprintf(`class="([^"]* )?%s( [^"]*)?"`, regexp.QuoteMeta(class))
	assert.Regexp(lvt.t, pattern, lvt.rendered)
	return lvt
}

// AssertEvent verifies a control bound to event is rendered.
func (lvt *LiveViewTest) AssertEvent(event string) *LiveViewTest {
	lvt.t.Helper()
	assert.Regexp(lvt.t, fmt.Sprintf(`lv-(click|input|change)="%s"`, regexp.QuoteMeta(event)), lvt.rendered)
	return lvt
}

// AssertSentCount verifies the number of messages sent on the socket.
func (lvt *LiveViewTest) AssertSentCount(count int) *LiveViewTest {
	lvt.t.Helper()
	assert.Equal(lvt.t, count, lvt.transport.SentCount())
	return lvt
}

// AwaitText delivers mailbox messages until the rendered output contains
// text or timeout passes.
func (lvt *LiveViewTest) AwaitText(text string, timeout time.Duration) *LiveViewTest {
	lvt.t.Helper()
	deadline := time.Now().Add(timeout)
	for !strings.Contains(lvt.rendered, text) {
		remaining := time.Until(deadline)
		if remaining <= 0 || !lvt.AwaitInfo(remaining) {
			assert.Fail(lvt.t, "text never rendered", "want %q in:\n%s", text, lvt.rendered)
			break
		}
	}
	return lvt
}
