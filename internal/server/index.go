package server

import (
	"fmt"
	"net/http"
)

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>graphfocus</title>
<style>
    body {
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        margin: 0;
        padding: 20px;
        background: #f5f5f5;
    }
    .container {
        display: flex;
        gap: 20px;
        height: calc(100vh - 40px);
    }
    .left-panel {
        width: 450px;
        flex-shrink: 0;
        overflow-y: auto;
    }
    .right-panel {
        flex: 1;
        display: flex;
        flex-direction: column;
    }
    h1 { margin-top: 0; }
    label {
        display: block;
        margin-top: 12px;
        margin-bottom: 4px;
        font-weight: 500;
        font-size: 14px;
    }
    textarea, input[type=text] {
        width: 100%;
        box-sizing: border-box;
        font-family: monospace;
        font-size: 14px;
        padding: 10px;
        border: 1px solid #ccc;
        border-radius: 4px;
    }
    button {
        margin-top: 12px;
        padding: 10px 20px;
        font-size: 14px;
        background: #4a90d9;
        color: white;
        border: none;
        border-radius: 4px;
        cursor: pointer;
    }
    button:hover { background: #357abd; }
    details {
        margin-top: 15px;
        font-size: 13px;
        color: #666;
    }
    summary { cursor: pointer; }
    pre {
        background: #fff;
        padding: 10px;
        border-radius: 4px;
        overflow-x: auto;
        font-size: 12px;
    }
    #preview {
        flex: 1;
        border: 1px solid #ccc;
        border-radius: 4px;
        background: white;
    }
    .hint {
        font-size: 12px;
        color: #888;
        margin-top: 4px;
    }
</style>
</head>
<body>
<div class="container">
    <div class="left-panel">
        <h1>graphfocus</h1>
        <p>Draw a directed graph and explore it by hovering and clicking nodes.</p>
        <form>
            <label for="graph">Graph (JSON or DOT)</label>
            <textarea name="graph" id="graph" rows="14" placeholder='{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"source":"a","target":"b"}]}'></textarea>
            <label for="selected">Selected node (optional)</label>
            <input type="text" name="selected" id="selected">
            <label><input type="checkbox" name="filterOrphan" id="filterOrphan"> Hide nodes without edges</label>
            <div class="hint">Hold Shift while hovering to trace what a node depends on, Control for what depends on it.</div>
            <button type="submit">Render</button>
        </form>
        <details>
            <summary>API Usage</summary>
            <pre>
POST /render
  JSON body: {"nodes": [...], "edges": [...],
              "selectedNodeId": "...", "filterOrphan": true,
              "graphSettings": {"focusColor": "red"}}
  or a plain DOT document
  Query params:
    format=json  - Return the page data instead of HTML
    title=...    - Set the page title
    selected=... - Select a node

Examples:
  curl -X POST -H "Content-Type: application/json" \
    -d '{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"source":"a","target":"b"}]}' \
    localhost:8080/render

  curl -X POST -d 'digraph { A -> B }' localhost:8080/render
            </pre>
        </details>
    </div>
    <div class="right-panel">
        <iframe id="preview" frameborder="0"></iframe>
    </div>
</div>
<script>
document.querySelector('form').addEventListener('submit', function(e) {
    e.preventDefault();
    const body = document.getElementById('graph').value;
    const params = new URLSearchParams();
    const selected = document.getElementById('selected').value;
    if (selected) params.set('selected', selected);
    if (document.getElementById('filterOrphan').checked) params.set('filterOrphan', 'true');

    fetch('/render?' + params.toString(), { method: 'POST', body: body })
    .then(r => r.text().then(text => ({ ok: r.ok, text })))
    .then(result => {
        const iframe = document.getElementById('preview');
        if (result.ok) {
            iframe.srcdoc = result.text;
        } else {
            const div = document.createElement('div');
            div.style.cssText = 'padding:20px;color:#c62828;font-family:monospace;white-space:pre-wrap;';
            div.textContent = result.text;
            iframe.srcdoc = div.outerHTML;
        }
    })
    .catch(err => {
        document.getElementById('preview').srcdoc = '<div style="padding:20px;color:#c62828;">' + err.message + '</div>';
    });
});
</script>
</body>
</html>`
