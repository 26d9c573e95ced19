package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplacesAllTokens(t *testing.T) {
	vars := Vars{
		Name:            "Ada Obi",
		ChurchName:      "RCCG Victory Center",
		ServiceAttended: "Sunday Morning",
	}

	got := Render("Hi {{name}}, welcome to {{church_name}}!", vars)
	assert.Equal(t, "Hi Ada Obi, welcome to RCCG Victory Center!", got)
}

func TestRenderReplacesRepeatedTokens(t *testing.T) {
	got := Render("{{name}} {{name}} {{name}}", Vars{Name: "Ada"})
	assert.Equal(t, "Ada Ada Ada", got)
}

func TestRenderServiceFallback(t *testing.T) {
	got := Render("Thanks for attending {{service_attended}} service", Vars{Name: "Ada"})
	assert.Equal(t, "Thanks for attending our service", got)
}

func TestRenderMissingKeysNeverError(t *testing.T) {
	got := Render("Hi {{name}}, welcome to {{church_name}}!", Vars{})
	assert.Equal(t, "Hi , welcome to !", got)
}

func TestRenderNoTokensIsNoOp(t *testing.T) {
	msg := "Hi Ada Obi, welcome to RCCG Victory Center!"
	once := Render(msg, Vars{Name: "Other", ChurchName: "Other"})
	assert.Equal(t, msg, once)

	// Idempotent: a second pass over rendered output changes nothing.
	vars := Vars{Name: "Ada", ChurchName: "RCCG", ServiceAttended: "Sunday"}
	rendered := Render("Hi {{name}} from {{church_name}}", vars)
	assert.Equal(t, rendered, Render(rendered, vars))
}
