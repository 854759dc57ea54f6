// Package nodelink draws a family tree as a node-link diagram.
//
// [ToDOT] turns a [family.Tree] into Graphviz DOT: one rounded box per
// person, top-to-bottom from the oldest generation, with parent→child edges
// coloured by role (blue for fathers, rose for mothers). Arrowheads are off
// unless [Options.Arrows] is set, since generation order already reads top
// to bottom.
//
// [Render] runs Graphviz in process via [github.com/goccy/go-graphviz] and
// returns SVG, PNG or JPG bytes:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Highlight: ids})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG)
//
// With [Options.Photos] each person whose photo file exists gets a taller
// node. [RenderWithPhotos] embeds the photos as data URIs in SVG and
// composites them onto PNG and JPG with [github.com/disintegration/imaging],
// since the in-process Graphviz cannot open host files. DOT output keeps a
// plain image attribute for use with a native dot binary.
//
// Highlighting is how query results show up in a diagram: common ancestors
// or a descendant line are filled with the accent colour and the people the
// query was about are outlined.
package nodelink
