package io

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saasfactory/archviz/pkg/blueprint"
	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/diagram"
	"github.com/saasfactory/archviz/pkg/errors"
	"github.com/saasfactory/archviz/pkg/render/nodelink"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"json", JSON, false},
		{"JSON", JSON, false},
		{".yaml", YAML, false},
		{"yml", YAML, false},
		{"toml", TOML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEncoding(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEncoding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEncoding(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodingOf(t *testing.T) {
	if got, err := EncodingOf("arch/system.yml"); err != nil || got != YAML {
		t.Errorf("EncodingOf(system.yml) = %q, %v", got, err)
	}
	if _, err := EncodingOf("Makefile"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("EncodingOf(Makefile) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRoundTrip(t *testing.T) {
	variants := []struct {
		name string
		opts []blueprint.Option
	}{
		{"default", nil},
		{"clusters", []blueprint.Option{blueprint.WithContainerClusters(), blueprint.WithSecrets()}},
		{"top-bottom", []blueprint.Option{blueprint.WithDirection(diagram.TopToBottom)}},
	}

	for _, v := range variants {
		for _, enc := range []Encoding{JSON, YAML, TOML} {
			t.Run(v.name+"/"+string(enc), func(t *testing.T) {
				want, err := blueprint.SaaSB2B(v.opts...)
				if err != nil {
					t.Fatalf("SaaSB2B: %v", err)
				}

				var buf bytes.Buffer
				if err := Write(&buf, want, enc); err != nil {
					t.Fatalf("Write: %v", err)
				}
				got, err := Read(&buf, enc)
				if err != nil {
					t.Fatalf("Read: %v\n%s", err, buf.String())
				}

				if got.Title() != want.Title() {
					t.Errorf("title = %q, want %q", got.Title(), want.Title())
				}
				if got.Direction() != want.Direction() {
					t.Errorf("direction = %q, want %q", got.Direction(), want.Direction())
				}
				if diff := cmp.Diff(want.Nodes(), got.Nodes()); diff != "" {
					t.Errorf("nodes mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(want.Edges(), got.Edges()); diff != "" {
					t.Errorf("edges mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(want.Clusters(), got.Clusters()); diff != "" {
					t.Errorf("clusters mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestRoundTripKeepsEmptyLabels(t *testing.T) {
	build := func() *diagram.Diagram {
		d := diagram.New("blank labels")
		a := d.Add("a", "", catalog.EC2)
		c := d.Cluster("c", "", func(c *diagram.ClusterScope) {
			c.Add("b", "B", catalog.RDS)
		})
		d.Chain(a, c)
		return d
	}

	for _, enc := range []Encoding{JSON, YAML, TOML} {
		t.Run(string(enc), func(t *testing.T) {
			want := build()
			if err := want.Err(); err != nil {
				t.Fatalf("build: %v", err)
			}
			data, err := Marshal(want, enc)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := Read(bytes.NewReader(data), enc)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, data)
			}

			if n, _ := got.Node("a"); n.Label != "" {
				t.Errorf("node label = %q, want empty", n.Label)
			}
			if c, _ := got.ClusterByID("c"); c.Label != "" {
				t.Errorf("cluster label = %q, want empty", c.Label)
			}
			wantDOT := nodelink.ToDOT(want, nodelink.Options{})
			gotDOT := nodelink.ToDOT(got, nodelink.Options{})
			if diff := cmp.Diff(wantDOT, gotDOT); diff != "" {
				t.Errorf("DOT changed across %s round trip (-want +got):\n%s", enc, diff)
			}
		})
	}
}

const chainYAML = `
title: Workers
direction: tb
nodes:
  - {id: lb, kind: aws.network.ELB}
  - {id: w1, label: worker 1, kind: aws.compute.EC2}
  - {id: w2, label: worker 2, kind: aws.compute.EC2}
  - {id: db, kind: aws.database.RDS}
clusters:
  - {id: workers, nodes: [w1, w2]}
chains:
  - [lb, workers, db]
`

func TestReadChainsWithClusters(t *testing.T) {
	d, err := Read(strings.NewReader(chainYAML), YAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []diagram.Edge{
		{From: "lb", To: "w1"},
		{From: "lb", To: "w2"},
		{From: "w1", To: "db"},
		{From: "w2", To: "db"},
	}
	if diff := cmp.Diff(want, d.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if d.Direction() != diagram.TopToBottom {
		t.Errorf("direction = %q, want TB", d.Direction())
	}
	if n, _ := d.Node("lb"); n.Label != "lb" {
		t.Errorf("label should default to the ID, got %q", n.Label)
	}
	if c, _ := d.ClusterByID("workers"); c.Label != "workers" {
		t.Errorf("cluster label should default to the ID, got %q", c.Label)
	}
}

func TestReadJSONDefaults(t *testing.T) {
	in := `{"nodes":[{"id":"a","kind":"aws.compute.EC2"},{"id":"b","kind":"aws.database.RDS"}],"edges":[{"from":"a","to":"b"},{"from":"a","to":"b"}]}`
	d, err := Read(strings.NewReader(in), JSON)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Title() != "diagram" {
		t.Errorf("title = %q, want default", d.Title())
	}
	if d.Direction() != diagram.DefaultDirection {
		t.Errorf("direction = %q, want default", d.Direction())
	}
	if d.EdgeCount() != 1 {
		t.Errorf("duplicate edges should collapse, got %d", d.EdgeCount())
	}
}

func TestReadTOML(t *testing.T) {
	in := `
title = "Queue"
chains = [["producer", "queue"]]

[[nodes]]
id = "producer"
kind = "aws.compute.EC2"

[[nodes]]
id = "queue"
kind = "onprem.queue.Kafka"
`
	d, err := Read(strings.NewReader(in), TOML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !d.HasEdge("producer", "queue") {
		t.Errorf("missing producer->queue edge, got %v", d.Edges())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		in   string
		code errors.Code
	}{
		{
			name: "malformed json",
			enc:  JSON,
			in:   `{"nodes": [`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown json field",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"}],"colour":"red"}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown yaml field",
			enc:  YAML,
			in:   "nodes:\n  - {id: a, kind: aws.compute.EC2, size: 3}\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown toml key",
			enc:  TOML,
			in:   "colour = \"red\"\n[[nodes]]\nid = \"a\"\nkind = \"aws.compute.EC2\"\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "empty yaml",
			enc:  YAML,
			in:   "",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "no nodes",
			enc:  JSON,
			in:   `{"title":"empty","nodes":[]}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown kind",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"gcp.compute.GCE"}]}`,
			code: errors.ErrCodeInvalidResource,
		},
		{
			name: "duplicate node",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"},{"id":"a","kind":"aws.compute.EC2"}]}`,
			code: errors.ErrCodeDuplicateNode,
		},
		{
			name: "dangling edge",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"}],"edges":[{"from":"a","to":"b"}]}`,
			code: errors.ErrCodeDanglingEdge,
		},
		{
			name: "self loop",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"}],"edges":[{"from":"a","to":"a"}]}`,
			code: errors.ErrCodeSelfLoop,
		},
		{
			name: "dangling chain",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"}],"chains":[["a","ghost"]]}`,
			code: errors.ErrCodeDanglingEdge,
		},
		{
			name: "node in two clusters",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a","kind":"aws.compute.EC2"}],"clusters":[{"id":"x","nodes":["a"]},{"id":"y","nodes":["a"]}]}`,
			code: errors.ErrCodeClusterConflict,
		},
		{
			name: "bad direction",
			enc:  JSON,
			in:   `{"direction":"diagonal","nodes":[{"id":"a","kind":"aws.compute.EC2"}]}`,
			code: errors.ErrCodeInvalidDirection,
		},
		{
			name: "bad node id",
			enc:  JSON,
			in:   `{"nodes":[{"id":"a b","kind":"aws.compute.EC2"}]}`,
			code: errors.ErrCodeInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.enc)
			if err == nil {
				t.Fatal("Read() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	want, err := blueprint.SaaSB2B(blueprint.WithContainerClusters())
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}

	for _, name := range []string{"system.json", "system.yaml", "system.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(want, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if diff := cmp.Diff(want.Edges(), got.Edges()); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	txt := filepath.Join(dir, "system.txt")
	if err := os.WriteFile(txt, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(txt); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension error = %v, want INVALID_FORMAT", err)
	}

	for _, path := range []string{"", "bad\x00name.json"} {
		if _, err := Import(path); !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("Import(%q) error = %v, want INVALID_PATH", path, err)
		}
	}
	d, _ := blueprint.SaaSB2B()
	if err := Export(d, ""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Export(\"\") error = %v, want INVALID_PATH", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nodes":[{"id":"a","kind":"nope"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Import(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("Import error should name the file, got %v", err)
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteCloseReportsCloseError(t *testing.T) {
	d, _ := blueprint.SaaSB2B()

	flushErr := stderrors.New("disk full")
	wc := &failingCloser{closeErr: flushErr}
	err := writeClose(wc, d, JSON, "arch.json")
	if !stderrors.Is(err, flushErr) {
		t.Errorf("writeClose() error = %v, want %v", err, flushErr)
	}
	if !strings.Contains(err.Error(), "arch.json") {
		t.Errorf("error should name the file: %v", err)
	}

	ok := &failingCloser{}
	if err := writeClose(ok, d, JSON, "arch.json"); err != nil {
		t.Fatalf("writeClose() = %v", err)
	}
	if !ok.closed || ok.Len() == 0 {
		t.Error("writeClose should write the definition and close")
	}

	bad := &failingCloser{closeErr: flushErr}
	if err := writeClose(bad, d, Encoding("xml"), "arch.xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("writeClose(xml) error = %v, want INVALID_FORMAT", err)
	}
	if !bad.closed {
		t.Error("writeClose should close after a failed write")
	}
}

func TestMarshalUnsupported(t *testing.T) {
	d, _ := blueprint.SaaSB2B()
	if _, err := Marshal(d, Encoding("xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Marshal(xml) error = %v, want INVALID_FORMAT", err)
	}
}
