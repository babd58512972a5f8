package scene

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
)

// WriteSVG serializes the scene as a standalone SVG document: lines first,
// then one group per node holding its label and circle.
func (s *Scene) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	marker := s.MarkerID()

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" style="background-color: %s">`+"\n",
		s.Width, s.Height, html.EscapeString(s.Background))
	fmt.Fprintf(bw, `<defs><marker id="%s" viewBox="0 -5 10 10" refX="26" refY="0" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M0,-5L10,0L0,5" fill="context-stroke"/></marker></defs>`+"\n", marker)

	t := s.transform
	fmt.Fprintf(bw, `<g transform="translate(%s,%s) scale(%s)">`+"\n", num(t.X), num(t.Y), num(t.K))

	bw.WriteString("<g class=\"links\">\n")
	for _, l := range s.lines {
		fmt.Fprintf(bw, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			html.EscapeString(l.Class), num(l.X), num(l.Y), num(l.X2), num(l.Y2), attrs(l.Attrs, marker))
	}
	bw.WriteString("</g>\n")

	bw.WriteString("<g class=\"nodes\">\n")
	for _, id := range s.order {
		lb, c := s.labels[id], s.circles[id]
		bw.WriteString("<g>")
		fmt.Fprintf(bw, `<text class="%s" x="%s" y="%s" text-anchor="middle"%s>%s</text>`,
			html.EscapeString(lb.Class), num(lb.X), num(lb.Y), attrs(lb.Attrs, marker), html.EscapeString(lb.Text))
		fmt.Fprintf(bw, `<circle class="%s" cx="%s" cy="%s" r="%s"%s/>`,
			html.EscapeString(c.Class), num(c.X), num(c.Y), num(c.Radius), attrs(c.Attrs, marker))
		bw.WriteString("</g>\n")
	}
	bw.WriteString("</g>\n</g>\n</svg>\n")

	return bw.Flush()
}

func attrs(a Attrs, marker string) string {
	var out []byte
	add := func(name, value string) {
		if value == "" {
			return
		}
		out = append(out, ' ')
		out = append(out, name...)
		out = append(out, `="`...)
		out = append(out, html.EscapeString(value)...)
		out = append(out, '"')
	}
	add("fill", a.Fill)
	add("stroke", a.Stroke)
	if a.StrokeWidth > 0 {
		add("stroke-width", num(a.StrokeWidth))
	}
	add("font-weight", a.FontWeight)
	if a.FontSize > 0 {
		add("font-size", num(a.FontSize))
	}
	if a.DashArray != "" {
		add("stroke-dasharray", a.DashArray)
		add("stroke-dashoffset", num(a.DashOffset))
	}
	if a.MarkerStart == MarkerArrow {
		add("marker-start", "url(#"+marker+")")
	}
	if a.MarkerEnd == MarkerArrow {
		add("marker-end", "url(#"+marker+")")
	}
	return string(out)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
