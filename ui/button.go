package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ---- Button Components ----

type buttonOption func(*buttonConfig)

type buttonConfig struct {
	href       string
	class      string
	attributes []g.Node
}

// withHref makes the button a link
func withHref(href string) buttonOption {
	return func(c *buttonConfig) {
		c.href = href
	}
}

// withClass appends classes to the base style
func withClass(class string) buttonOption {
	return func(c *buttonConfig) {
		c.class = class
	}
}

// withAttributes adds htmx or other attributes
func withAttributes(attrs ...g.Node) buttonOption {
	return func(c *buttonConfig) {
		c.attributes = append(c.attributes, attrs...)
	}
}

func buttonStyled(text, baseClass string, options ...buttonOption) g.Node {
	cfg := &buttonConfig{}
	for _, option := range options {
		option(cfg)
	}

	class := baseClass
	if cfg.class != "" {
		class += " " + cfg.class
	}

	attrs := []g.Node{Class(class)}
	attrs = append(attrs, cfg.attributes...)
	attrs = append(attrs, g.Text(text))

	if cfg.href != "" {
		return A(append([]g.Node{Href(cfg.href)}, attrs...)...)
	}
	return Button(append([]g.Node{Type("button")}, attrs...)...)
}

// button creates a primary button (blue background)
func button(text string, options ...buttonOption) g.Node {
	return buttonStyled(text, "px-4 py-2 rounded inline-block bg-blue-500 text-white hover:bg-blue-600", options...)
}

// buttonSecondary creates a secondary button (blue text, underlined on hover)
func buttonSecondary(text string, options ...buttonOption) g.Node {
	return buttonStyled(text, "px-4 py-2 rounded inline-block text-blue-500 hover:underline", options...)
}

func buttonWhatsApp(text string, options ...buttonOption) g.Node {
	return buttonStyled(text, "px-4 py-2 rounded inline-block bg-green-500 text-white hover:bg-green-600", options...)
}

func actionButtons(buttons ...g.Node) g.Node {
	return Div(
		Class("mt-8 space-x-4"),
		g.Group(buttons),
	)
}
