package web

import "net/http"

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, ctrl Controller) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(ctrl)))
}

// RegisterPreview serves a page that polls the frame endpoint.
func RegisterPreview(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(previewHTML))
	})
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the live preview
func NewDefaultMux(ctrl Controller) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, ctrl)
	RegisterPreview(mux)
	return mux
}

const previewHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>monoframe</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; }
img { image-rendering: pixelated; border: 1px solid #333; }
button { margin: 4px; }
</style>
</head>
<body>
<img id="frame" src="/api/v1/frame.png?scale=4" alt="panel">
<div>
<button onclick="post('/api/v1/input', {event: 'select'})">select</button>
<button onclick="post('/api/v1/input', {event: 'next'})">next</button>
<button onclick="post('/api/v1/pop')">back</button>
</div>
<pre id="status"></pre>
<script>
function post(path, body) {
  fetch(path, {method: 'POST', headers: {'Content-Type': 'application/json'}, body: body ? JSON.stringify(body) : undefined});
}
setInterval(function () {
  document.getElementById('frame').src = '/api/v1/frame.png?scale=4&t=' + Date.now();
  fetch('/api/v1/status').then(function (r) { return r.json(); }).then(function (s) {
    document.getElementById('status').textContent = JSON.stringify(s, null, 2);
  });
}, 250);
</script>
</body>
</html>
`
