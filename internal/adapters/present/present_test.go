package present_test

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/present"
	"go.trai.ch/plate/internal/core/domain"
)

var (
	rendered = domain.Rendered{Paths: domain.ArtifactPaths{
		OutputURI:  "_images/ditaa-0f.png",
		OutputPath: "/site/_images/ditaa-0f.png",
	}}
	unavailable = domain.Unavailable{Renderer: "ditaa", Reason: errors.New("not found")}
)

func TestPresenters(t *testing.T) {
	box := domain.Directive{Code: "+--+\n|<>|\n+--+"}

	tests := []struct {
		name       string
		presenter  string
		directive  domain.Directive
		outcome    domain.Outcome
		goldenName string
	}{
		{name: "html rendered", presenter: domain.FormatHTML, directive: box, outcome: rendered, goldenName: "html_rendered"},
		{
			name:      "html rendered inline with alt and caption",
			presenter: domain.FormatHTML,
			directive: domain.Directive{Code: box.Code, Alt: `a "box"`, Caption: "Figure 1 & 2", Inline: true},
			outcome:   rendered, goldenName: "html_rendered_inline",
		},
		{name: "html unavailable", presenter: domain.FormatHTML, directive: box, outcome: unavailable, goldenName: "html_unavailable"},
		{
			name:      "latex rendered with caption",
			presenter: domain.FormatLaTeX,
			directive: domain.Directive{Code: box.Code, Caption: "50% of_all"},
			outcome:   rendered, goldenName: "latex_rendered_caption",
		},
		{name: "latex rendered", presenter: domain.FormatLaTeX, directive: box, outcome: rendered, goldenName: "latex_rendered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := present.ForFormat(tt.presenter)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(p.Present(tt.directive, tt.outcome)))
		})
	}
}

func TestLaTeX_Unavailable(t *testing.T) {
	out := present.LaTeX{}.Present(domain.Directive{Code: "x", Caption: "c"}, unavailable)
	assert.Empty(t, out)
}

func TestForFormat(t *testing.T) {
	html, err := present.ForFormat(domain.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "html", html.Format())
	assert.Equal(t, ".html", html.Extension())

	latex, err := present.ForFormat(domain.FormatLaTeX)
	require.NoError(t, err)
	assert.Equal(t, "latex", latex.Format())
	assert.Equal(t, ".tex", latex.Extension())

	_, err = present.ForFormat("pdf")
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
}
