package export

// This file implements a browser preview of the SVG diagram. Pages subscribe
// to a Server-Sent Events (SSE) stream: a "tree" event swaps the diagram in
// place, a "theme" event reloads the page so the new stylesheet applies.

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/eqtree/pkg/theme"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// PreviewStatus is the payload of every preview event.
type PreviewStatus struct {
	Revision int `json:"revision"`
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
}

type previewEvent struct {
	name   string
	status PreviewStatus
}

// PreviewHub holds the current diagram and the connected SSE clients.
type PreviewHub struct {
	title string

	mu      sync.RWMutex
	svg     []byte
	palette theme.Palette
	status  PreviewStatus
	clients map[chan previewEvent]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPreviewHub renders roots and returns a hub ready to serve.
func NewPreviewHub(title string, roots []*tree.Node, p theme.Palette) (*PreviewHub, error) {
	ctx, cancel := context.WithCancel(context.Background())
	h := &PreviewHub{
		title:   title,
		palette: p,
		clients: make(map[chan previewEvent]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	if err := h.Update(roots, p); err != nil {
		cancel()
		return nil, err
	}
	return h, nil
}

// Update re-renders the diagram and pushes it to every client. A palette
// change asks pages to reload instead.
func (h *PreviewHub) Update(roots []*tree.Node, p theme.Palette) error {
	var buf bytes.Buffer
	if err := SVG(&buf, roots, p); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	forest := tree.Forest(roots)

	h.mu.Lock()
	name := "tree"
	if p != h.palette {
		name = "theme"
	}
	h.svg = buf.Bytes()
	h.palette = p
	h.status = PreviewStatus{Revision: h.status.Revision + 1, Nodes: forest.Len(), Leaves: forest.LeafCount()}
	ev := previewEvent{name: name, status: h.status}
	h.mu.Unlock()

	h.broadcast(ev)
	return nil
}

// Status returns the current revision and counts.
func (h *PreviewHub) Status() PreviewStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Stop disconnects all clients.
func (h *PreviewHub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		close(ch)
	}
	h.clients = make(map[chan previewEvent]struct{})
}

// ClientCount returns the number of connected clients.
func (h *PreviewHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast hands ev to every client. A client still holding an older event
// gets it replaced, so slow pages only ever see the latest revision.
func (h *PreviewHub) broadcast(ev previewEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case old := <-ch:
			if old.name == "theme" {
				ev.name = "theme"
			}
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Handler serves the preview page, the raw SVG and the event stream.
func (h *PreviewHub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.pageHandler)
	mux.HandleFunc("/tree.svg", h.svgHandler)
	mux.HandleFunc("/__preview__/events", h.SSEHandler())
	return mux
}

func (h *PreviewHub) svgHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	body := h.svg
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (h *PreviewHub) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.mu.RLock()
	body, p, st := h.svg, h.palette, h.status
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>\n",
		html.EscapeString(h.title))
	fmt.Fprintf(w, "<style>%s\nbody{margin:0;background:var(--gradient-background);color:var(--color-label);font-family:sans-serif}\n"+
		"#status{padding:4px 12px;font-size:12px;color:var(--color-label-secondary)}</style>\n",
		theme.RenderCSS("preview", p))
	fmt.Fprintf(w, "</head><body>\n<div id=\"status\">%d nodes, %d leaves</div>\n<main id=\"diagram\">%s</main>\n%s\n</body></html>\n",
		st.Nodes, st.Leaves, body, PreviewScript)
}

// SSEHandler returns an HTTP handler for the SSE endpoint. The first event is
// "hello" with the current status.
func (h *PreviewHub) SSEHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")

		events := make(chan previewEvent, 1)
		h.mu.Lock()
		h.clients[events] = struct{}{}
		hello := previewEvent{name: "hello", status: h.status}
		h.mu.Unlock()

		defer func() {
			h.mu.Lock()
			delete(h.clients, events)
			h.mu.Unlock()
		}()

		if err := writeEvent(w, hello); err != nil {
			return
		}
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-h.ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := writeEvent(w, ev); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev previewEvent) error {
	data, err := json.Marshal(ev.status)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, data)
	return err
}

// PreviewScript keeps the page in sync with the hub: tree events refetch the
// SVG, theme events reload, and dropped connections retry with backoff.
const PreviewScript = `<script>
(function() {
  if (!window.EventSource) return;
  var delay = 500;
  var seen = 0;

  function swap(st) {
    if (st.revision <= seen) return;
    seen = st.revision;
    fetch('/tree.svg?rev=' + st.revision, {cache: 'no-store'})
      .then(function(r) { return r.text(); })
      .then(function(svg) {
        document.getElementById('diagram').innerHTML = svg;
        document.getElementById('status').textContent = st.nodes + ' nodes, ' + st.leaves + ' leaves';
      });
  }

  function subscribe() {
    var src = new EventSource('/__preview__/events');
    src.addEventListener('hello', function(e) {
      delay = 500;
      var st = JSON.parse(e.data);
      if (seen === 0) { seen = st.revision; } else { swap(st); }
    });
    src.addEventListener('tree', function(e) { swap(JSON.parse(e.data)); });
    src.addEventListener('theme', function() { location.reload(); });
    src.onerror = function() {
      src.close();
      setTimeout(subscribe, delay);
      delay = Math.min(delay * 2, 15000);
    };
  }

  subscribe();
})();
</script>`
