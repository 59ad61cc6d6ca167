package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ---- Button Components ----

type buttonVariant string

const (
	variantPrimary   buttonVariant = "bg-[#c1ff72] text-[#272D3C] font-semibold hover:bg-[#a8e65a]"
	variantSecondary buttonVariant = "bg-gray-200 text-gray-800 hover:bg-gray-300"
	variantWhatsApp  buttonVariant = "bg-green-500 text-white font-semibold hover:bg-green-600"
)

const buttonBase = "px-4 py-2 rounded-lg inline-block"

type buttonOption func(*buttonConfig)

type buttonConfig struct {
	href       string
	buttonType string
	class      string
	attributes []g.Node
}

// withHref renders the button as a link
func withHref(href string) buttonOption {
	return func(c *buttonConfig) { c.href = href }
}

func withType(buttonType string) buttonOption {
	return func(c *buttonConfig) { c.buttonType = buttonType }
}

func withClass(class string) buttonOption {
	return func(c *buttonConfig) { c.class = class }
}

func withAttributes(attrs ...g.Node) buttonOption {
	return func(c *buttonConfig) { c.attributes = append(c.attributes, attrs...) }
}

func newButton(variant buttonVariant, text string, options ...buttonOption) g.Node {
	var cfg buttonConfig
	for _, option := range options {
		option(&cfg)
	}

	class := buttonBase + " " + string(variant)
	if cfg.class != "" {
		class += " " + cfg.class
	}

	nodes := []g.Node{Class(class)}
	if cfg.href != "" {
		nodes = append(nodes, Href(cfg.href))
		nodes = append(nodes, cfg.attributes...)
		return A(append(nodes, g.Text(text))...)
	}
	if cfg.buttonType != "" {
		nodes = append(nodes, Type(cfg.buttonType))
	}
	nodes = append(nodes, cfg.attributes...)
	return Button(append(nodes, g.Text(text))...)
}

func button(text string, options ...buttonOption) g.Node {
	return newButton(variantPrimary, text, options...)
}

func buttonSecondary(text string, options ...buttonOption) g.Node {
	return newButton(variantSecondary, text, options...)
}

func buttonWhatsApp(text string, options ...buttonOption) g.Node {
	return newButton(variantWhatsApp, text, options...)
}
