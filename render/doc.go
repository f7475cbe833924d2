// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render turns a computed dashboard into Markdown or HTML.

The market table, rare pints and popularity sections are collapsed to their
first five rows unless the caller's ViewState expands them. ViewState is an
argument, so two requests never share expansion state:

	view := render.ViewFromQuery(r.URL.Query())
	err := render.HTML(w, dashboard, view)

HTML is produced by converting the Markdown with goldmark; raw HTML in pub
or drink names is escaped before conversion.
*/
package render
