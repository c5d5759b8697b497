/*
Package calinea builds, converts and measures styled chat text as used by
block-game clients.

Text is modelled as an immutable tree of components. Each node carries one
piece of content (literal text, a translation key with arguments, or a
keybind), a partial style and optional click/hover interaction. Children
inherit their parent's style for every property they leave unset.

# Concept

The tree is the single in-memory representation. Codecs move it in and out
of wire formats, a translator replaces client-side content with literal text
from resource pack data, and a measurer computes the width a client would
render. Everything else (wrapping, alignment, linting, previews) is built on
those three pieces.

# Key Features

  - Immutable Trees: nodes are never modified after construction and may be shared.
  - Pluggable Codecs: legacy marker codes, tag markup, JSON, YAML and markdown behind one interface.
  - Pixel Layout: word wrapping and alignment with per-glyph widths from pack data.
  - Storage Adapters: in-memory, Redis and filesystem catalogs behind small ports.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/calinea"
		"github.com/aretw0/calinea/pkg/codec"
	)

	func main() {
		kit, err := calinea.New(calinea.WithPackFile("./pack.json"))
		if err != nil {
			log.Fatal(err)
		}

		// Markup in, legacy codes out.
		out, err := kit.Convert(codec.FormatMarkup, codec.FormatLegacy, "<red><b>Hello</b> world")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out) // &c&lHello&c world
	}
*/
package calinea
