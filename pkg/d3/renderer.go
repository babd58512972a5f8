package d3

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// Default page size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// RenderOptions configures HTML rendering.
type RenderOptions struct {
	Title  string
	Width  int
	Height int
}

var pageTemplate = template.Must(template.New("graph").Parse(htmlTemplate))

// RenderHTML generates a self-contained HTML file with the D3 visualization.
func RenderHTML(p *Page, opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, p, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the page to w.
func WriteHTML(w io.Writer, p *Page, opts RenderOptions) error {
	if opts.Title == "" {
		opts.Title = "Graph Visualization"
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	pageJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}

	data := struct {
		Title    string
		Width    int
		Height   int
		PageJSON template.JS
	}{
		Title:    opts.Title,
		Width:    opts.Width,
		Height:   opts.Height,
		PageJSON: template.JS(pageJSON),
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; }
        .node { cursor: pointer; }
        .node text { pointer-events: none; text-anchor: middle; }
        .link { fill: none; }
        #status {
            position: absolute;
            bottom: 12px;
            left: 12px;
            font-size: 12px;
            color: #555;
            background: rgba(255, 255, 255, 0.9);
            padding: 6px 10px;
            border-radius: 4px;
        }
        #status button { margin-left: 8px; font-size: 11px; }
    </style>
</head>
<body>
    <svg id="graph"></svg>
    <div id="status">
        <span id="mode-display"></span> &middot;
        <span id="selected-display"></span>
        <button id="clear-selection" hidden>clear</button>
    </div>
    <script>
    const page = {{.PageJSON}};
    const settings = page.settings;
    const width = {{.Width}};
    const height = {{.Height}};
    const markerURL = "url(#" + page.markerId + ")";

    const nodeById = new Map(page.nodes.map(n => [n.id, n]));

    let selectedNodeId = page.selected || "";
    let mode = "none";
    let generation = 0;

    let simulation = null;
    let ends = [];
    let adjacency = null;
    let link = null;
    let node = null;

    function highlightMode() {
        if (mode === "referred") return "in";
        if (mode === "refer") return "out";
        return "normal";
    }

    function modeColor(m) {
        if (m === "in") return settings.graphInColor;
        if (m === "out") return settings.graphOutColor;
        return settings.focusColor;
    }

    function baseFill(id) {
        return id === selectedNodeId ? settings.focusColor : settings.nodeColor;
    }

    const modeNames = { none: "hover: neighbours", refer: "hover: refers to", referred: "hover: referred by" };
    function showStatus() {
        document.getElementById("mode-display").textContent = modeNames[mode];
        const sel = nodeById.get(selectedNodeId);
        document.getElementById("selected-display").textContent =
            selectedNodeId ? "selected: " + (sel ? sel.label : selectedNodeId) : "click a node to select";
        document.getElementById("clear-selection").hidden = !selectedNodeId;
    }

    document.addEventListener("keydown", function(event) {
        if (event.key === "Shift") {
            mode = "referred";
        } else if (event.key === "Control") {
            mode = "refer";
        } else if (event.key === "Escape") {
            mode = "none";
            selectNode("");
        }
        showStatus();
    });
    document.addEventListener("keyup", function(event) {
        if (event.key === "Shift" && mode === "referred") mode = "none";
        if (event.key === "Control" && mode === "refer") mode = "none";
        showStatus();
    });

    // filterView keeps the selected node and its neighbours, or every node
    // (minus orphans when filterOrphan is set) without a selection.
    function filterView(selected) {
        let keep = null;
        if (selected) {
            keep = new Set([selected]);
            for (const l of page.links) {
                if (l.source === selected) keep.add(l.target);
                if (l.target === selected) keep.add(l.source);
            }
        } else if (page.filterOrphan) {
            keep = new Set();
            for (const l of page.links) {
                if (l.source) keep.add(l.source);
                if (l.target) keep.add(l.target);
            }
        }
        const nodes = page.nodes.filter(n => !keep || keep.has(n.id)).map(n => n.id);
        const present = new Set(nodes);
        const links = [];
        page.links.forEach(function(l, i) {
            if (!present.has(l.source) || !present.has(l.target)) return;
            if (selected && l.source !== selected && l.target !== selected) return;
            links.push(i);
        });
        return { nodes: nodes, links: links };
    }

    function index(from) {
        const adj = new Map();
        ends.forEach(function(end, i) {
            if (!adj.has(end[from])) adj.set(end[from], []);
            adj.get(end[from]).push(i);
        });
        return adj;
    }

    // resolve returns the related node ids and link positions for a hover.
    // In and out walk depth-first and record only the discovering link.
    function resolve(id, m) {
        const nodes = new Set([id]);
        const links = new Set();
        if (m === "normal") {
            ends.forEach(function(end, i) {
                if (end[0] === id && end[1]) { nodes.add(end[1]); links.add(i); }
                if (end[1] === id && end[0]) { nodes.add(end[0]); links.add(i); }
            });
            return { nodes: nodes, links: links };
        }
        const to = m === "in" ? 0 : 1;
        const adj = adjacency[m];
        (function visit(cur) {
            for (const i of adj.get(cur) || []) {
                const next = ends[i][to];
                if (!next || nodes.has(next)) continue;
                nodes.add(next);
                links.add(i);
                visit(next);
            }
        })(id);
        return { nodes: nodes, links: links };
    }

    const svg = d3.select("#graph")
        .attr("width", width)
        .attr("height", height)
        .style("background-color", settings.bg);

    svg.append("defs").append("marker")
        .attr("id", page.markerId)
        .attr("viewBox", "0 -5 10 10")
        .attr("refX", 26)
        .attr("refY", 0)
        .attr("markerWidth", 6)
        .attr("markerHeight", 6)
        .attr("orient", "auto-start-reverse")
        .append("path")
        .attr("d", "M0,-5L10,0L0,5")
        .attr("fill", "context-stroke");

    function resetGray() {
        node.select("circle").attr("fill", settings.grayColor);
        node.select("text")
            .attr("fill", settings.grayColor)
            .attr("font-weight", "normal")
            .attr("font-size", settings.fontSize);
        link.interrupt()
            .attr("stroke", settings.grayColor)
            .attr("stroke-width", 1.5)
            .attr("stroke-dasharray", null)
            .attr("stroke-dashoffset", null);
    }

    function flow(el, gen) {
        el.attr("stroke-dashoffset", 0)
            .transition()
            .duration(800)
            .ease(d3.easeLinear)
            .attr("stroke-dashoffset", 24)
            .on("end", function() {
                if (gen === generation) flow(el, gen);
            });
    }

    function applyHighlight(id, m) {
        generation++;
        const gen = generation;
        resetGray();

        const rel = resolve(id, m);
        const color = modeColor(m);

        link.each(function(d, i) {
            if (!rel.links.has(i)) return;
            rel.nodes.add(d.source.id);
            rel.nodes.add(d.target.id);
        });

        const focused = node.filter(d => rel.nodes.has(d.id));
        focused.select("circle").attr("fill", color);
        focused.select("text")
            .attr("fill", color)
            .attr("font-weight", "bold")
            .attr("font-size", settings.hoverFontSize);

        link.filter((d, i) => rel.links.has(i)).each(function() {
            const el = d3.select(this);
            el.interrupt()
                .attr("stroke-width", 3)
                .attr("marker-start", null)
                .attr("marker-end", markerURL);
            if (m === "normal") {
                el.attr("stroke", settings.hoverColor)
                    .attr("stroke-dasharray", null)
                    .attr("stroke-dashoffset", null);
                return;
            }
            el.attr("stroke", color).attr("stroke-dasharray", "8,4");
            flow(el, gen);
        });
    }

    function restore() {
        generation++;
        node.select("circle").attr("fill", d => baseFill(d.id));
        node.select("text")
            .attr("fill", d => baseFill(d.id))
            .attr("font-weight", "normal")
            .attr("font-size", settings.fontSize);
        link.interrupt()
            .attr("stroke", settings.linkColor)
            .attr("stroke-width", 1.5)
            .attr("stroke-dasharray", null)
            .attr("stroke-dashoffset", null)
            .attr("marker-start", null)
            .attr("marker-end", markerURL);
    }

    function selectNode(id) {
        if (id === selectedNodeId) return;
        selectedNodeId = id;
        draw(filterView(id));
    }

    document.getElementById("clear-selection").addEventListener("click", () => selectNode(""));

    function teardown() {
        generation++;
        if (simulation) simulation.stop();
        svg.selectAll("g.scene").interrupt().remove();
        svg.on(".zoom", null);
    }

    function draw(view) {
        teardown();
        showStatus();

        const nodes = view.nodes.map(id => ({ id: id, label: nodeById.get(id).label }));
        const links = view.links.map(i => ({ source: page.links[i].source, target: page.links[i].target }));
        ends = links.map(l => [l.source, l.target]);
        adjacency = { in: index(1), out: index(0) };

        const g = svg.append("g").attr("class", "scene");
        svg.call(d3.zoom()
            .scaleExtent([0.2, 3])
            .on("zoom", (event) => g.attr("transform", event.transform)));

        simulation = d3.forceSimulation(nodes)
            .force("link", d3.forceLink(links).id(d => d.id).distance(120))
            .force("charge", d3.forceManyBody().strength(-400))
            .force("center", d3.forceCenter(width / 2, height / 2));

        link = g.append("g")
            .attr("class", "links")
            .selectAll("line")
            .data(links)
            .join("line")
            .attr("class", "link")
            .attr("stroke", settings.linkColor)
            .attr("stroke-width", 1.5)
            .attr("marker-end", markerURL);

        const pin = d3.drag()
            .on("start", (event) => {
                if (!event.active) simulation.alphaTarget(0.3).restart();
                event.subject.fx = event.subject.x;
                event.subject.fy = event.subject.y;
            })
            .on("drag", (event) => {
                event.subject.fx = event.x;
                event.subject.fy = event.y;
            })
            .on("end", (event) => {
                if (!event.active) simulation.alphaTarget(0);
                event.subject.fx = null;
                event.subject.fy = null;
            });

        node = g.append("g")
            .attr("class", "nodes")
            .selectAll("g")
            .data(nodes)
            .join("g")
            .attr("class", d => "node node-" + d.id)
            .call(pin);

        node.append("title").text(d => d.label);

        node.append("text")
            .attr("y", 36)
            .attr("fill", d => baseFill(d.id))
            .attr("font-size", settings.fontSize)
            .text(d => d.label);

        node.append("circle")
            .attr("r", 16)
            .attr("fill", d => baseFill(d.id));

        node.on("mouseover", (event, d) => applyHighlight(d.id, highlightMode()))
            .on("mouseout", restore)
            .on("click", function(event, d) {
                event.stopPropagation();
                document.dispatchEvent(new CustomEvent("nodeClick", {
                    detail: { id: d.id },
                    bubbles: true
                }));
                selectNode(d.id);
            });

        simulation.on("tick", () => {
            link
                .attr("x1", d => d.source.x)
                .attr("y1", d => d.source.y)
                .attr("x2", d => d.target.x)
                .attr("y2", d => d.target.y);
            node.attr("transform", d => "translate(" + d.x + "," + d.y + ")");
        });
    }

    draw(page.view);
    </script>
</body>
</html>`
