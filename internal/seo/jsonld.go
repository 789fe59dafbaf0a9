package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script wraps a schema payload for embedding in a ld+json script element.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, inLanguage string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if inLanguage != "" {
		m["inLanguage"] = inLanguage
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		li := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			li["item"] = it.Item
		}
		el = append(el, li)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// TechArticle returns a minimal TechArticle schema payload for a guide page.
func TechArticle(headline, url, inLanguage, dateModified string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if inLanguage != "" {
		m["inLanguage"] = inLanguage
	}
	if dateModified != "" {
		m["dateModified"] = dateModified
	}
	return m
}
