package inspector

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vnative"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/hostconfig"
	"github.com/vango-dev/vnative/pkg/widget"
)

type fixture struct {
	renderer *vnative.Renderer
	insp     *Inspector
	server   *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := widget.NewApplication()
	host := hostconfig.New(
		hostconfig.WithLoop(app.Loop()),
		hostconfig.WithLogger(logger),
		hostconfig.WithMetrics(hostconfig.NewMetrics(hostconfig.WithRegistry(reg))),
	)
	r := vnative.NewRenderer(vnative.WithHostConfig(host), vnative.WithApplication(app), vnative.WithLogger(logger))
	insp := New(r, WithGatherer(reg), WithLogger(logger))
	srv := httptest.NewServer(insp.Handler())
	t.Cleanup(func() {
		insp.Close()
		srv.Close()
	})
	return &fixture{renderer: r, insp: insp, server: srv}
}

func (f *fixture) get(t *testing.T, path string, into any) int {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if into != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	}
	return resp.StatusCode
}

func sample() *element.Element {
	return element.Create("StackLayout", element.Props{
		"orientation": "horizontal",
		"onTap":       func() {},
	},
		element.Create("Label", element.Props{"style": hostconfig.Style{"color": "red"}}, "hi"),
		element.Create("Button", nil, "go"),
	)
}

func TestRootsListing(t *testing.T) {
	f := newFixture(t)
	_, err := f.renderer.Render(sample(), widget.NewPage(), nil, "main")
	require.NoError(t, err)

	var roots []RootSummary
	require.Equal(t, http.StatusOK, f.get(t, "/roots", &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "main", roots[0].Key)
	assert.Equal(t, "Page", roots[0].Container)
	assert.Equal(t, 3, roots[0].Views)

	root, _ := f.renderer.Root("main")
	assert.Equal(t, root.ID.String(), roots[0].ID)
}

func TestTreeSnapshot(t *testing.T) {
	f := newFixture(t)
	_, err := f.renderer.Render(sample(), widget.NewPage(), nil, "main")
	require.NoError(t, err)

	var tree Tree
	require.Equal(t, http.StatusOK, f.get(t, "/roots/main/tree", &tree))
	require.Len(t, tree.Nodes, 1)

	stack := tree.Nodes[0]
	assert.Equal(t, "StackLayout", stack.Type)
	assert.Equal(t, "horizontal", stack.Props["orientation"])
	assert.NotContains(t, stack.Props, "onTap")
	require.Len(t, stack.Children, 2)

	lbl := stack.Children[0]
	assert.Equal(t, "Label", lbl.Type)
	assert.Equal(t, "hi", lbl.Text)
	assert.Equal(t, "red", lbl.Props[hostconfig.StyleKey("color")])
	assert.NotContains(t, lbl.Props, widget.TextProperty)
}

func TestTreeUnknownRoot(t *testing.T) {
	f := newFixture(t)
	var body map[string]string
	assert.Equal(t, http.StatusNotFound, f.get(t, "/roots/missing/tree", &body))
	assert.Contains(t, body["error"], "missing")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	_, err := f.renderer.Render(sample(), widget.NewPage(), nil, "main")
	require.NoError(t, err)

	resp, err := http.Get(f.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `vnative_host_instances_created_total{type="Label"} 1`)
	assert.Contains(t, string(body), "vnative_host_roots 1")
}

func TestCommitStream(t *testing.T) {
	f := newFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return f.insp.Hub().ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	_, err = f.renderer.Render(sample(), widget.NewPage(), nil, "main")
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	root, _ := f.renderer.Root("main")
	assert.Equal(t, Message{Type: MessageCommit, Root: root.ID.String(), Key: "main"}, msg)
}

func TestSnapshotEncodesUnsupportedValues(t *testing.T) {
	v := widget.NewStackLayout()
	v.Set("items", []string{"a", "b"})
	v.Set("callback", func() {})
	v.Set("owner", widget.NewPage())
	v.Set("ch", make(chan int))

	n := Snapshot(v)
	assert.Equal(t, []string{"a", "b"}, n.Props["items"])
	assert.Equal(t, "<func()>", n.Props["callback"])
	assert.Equal(t, "<Page>", n.Props["owner"])
	assert.Equal(t, "<chan int>", n.Props["ch"])
	assert.Equal(t, []string{"callback", "ch", "items", "owner"}, n.PropKeys())

	_, err := json.Marshal(n)
	assert.NoError(t, err)
	assert.Equal(t, Node{}, Snapshot(nil))
	assert.Equal(t, 0, Snapshot(nil).Count())
}
