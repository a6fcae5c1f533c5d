package manifest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lthibault/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/manifest"
	"github.com/wetware/gval/value"
)

func loadArchive(t *testing.T, path string) (*manifest.Manifest, []string) {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var (
		m    *manifest.Manifest
		want []string
	)

	for _, f := range ar.Files {
		switch f.Name {
		case "manifest.yaml":
			m, err = manifest.Load(bytes.NewReader(f.Data))
			require.NoError(t, err)

		case "want":
			for _, line := range strings.Split(string(f.Data), "\n") {
				if line = normalize(line); line != "" {
					want = append(want, line)
				}
			}
		}
	}

	require.NotNil(t, m, "archive has no manifest")
	return m, want
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	m, want := loadArchive(t, "testdata/media.txtar")

	var buf bytes.Buffer
	require.NoError(t, m.Generate(&buf))

	got := make(map[string]bool)
	for _, line := range strings.Split(buf.String(), "\n") {
		got[normalize(line)] = true
	}

	for _, line := range want {
		assert.True(t, got[line], "missing line: %s", line)
	}

	// one registration per declared type
	assert.Equal(t, len(m.Types), strings.Count(buf.String(), "= mustRegister("))
}

func TestGenerate_defaults(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(strings.NewReader(`
types:
  - name: gval-test-widget
    kind: object
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Generate(&buf))

	src := buf.String()
	assert.Contains(t, src, "package "+manifest.DefaultPackage)
	assert.Contains(t, src, "GvaltestwidgetType")
	assert.NotContains(t, src, "gval/value", "unused import should be dropped")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	m, _ := loadArchive(t, "testdata/media.txtar")

	var logs bytes.Buffer
	logger := log.New(
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(new(logrus.JSONFormatter)),
		log.WithWriter(&logs))

	ts, err := m.Register(logger)
	require.NoError(t, err)
	require.Len(t, ts, len(m.Types))

	for i, d := range m.Types {
		assert.Equal(t, ts[i], gtype.FromName(d.Name))
		assert.Contains(t, logs.String(), d.Name)
	}

	var (
		dir, flags = ts[0], ts[1]
		proxy      = ts[2]
		elem, bin  = ts[3], ts[4]
		clock      = ts[5]
		caps       = ts[6]
	)

	assert.True(t, bin.IsA(elem))
	assert.True(t, bin.IsA(proxy), "interfaces are inherited")
	assert.True(t, elem.IsA(gtype.Object))
	assert.Equal(t, gtype.Uint64, clock.Parent())
	assert.True(t, caps.IsA(gtype.Boxed))

	class, ok := gtype.EnumClassOf(dir)
	require.True(t, ok)
	src, ok := class.ByNick("src")
	require.True(t, ok)
	assert.Equal(t, "GST_PAD_SRC", src.Name)

	v, err := value.New(dir)
	require.NoError(t, err)
	require.NoError(t, value.Set(v, 2))
	s, err := v.ToString()
	require.NoError(t, err)
	assert.Equal(t, "GST_PAD_SINK", s)

	v, err = value.New(flags)
	require.NoError(t, err)
	require.NoError(t, value.Set(v, uint32(5)))
	s, err = v.ToString()
	require.NoError(t, err)
	assert.Equal(t, "GST_SEEK_FLAG_FLUSH | GST_SEEK_FLAG_KEY_UNIT", s)

	// registering again is harmless
	again, err := m.Register(logger)
	require.NoError(t, err)
	assert.Equal(t, ts, again)
}

func TestRegister_unknownParent(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(strings.NewReader(`
types:
  - name: GvalTestOrphan
    kind: derived
    parent: GvalTestNoSuchType
`))
	require.NoError(t, err)

	_, err = m.Register(log.New(log.WithWriter(new(bytes.Buffer))))
	assert.ErrorContains(t, err, "GvalTestNoSuchType")
	assert.Equal(t, gtype.Invalid, gtype.FromName("GvalTestOrphan"))
}

func TestLoad_invalid(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name, yaml, want string
	}{
		{
			name: "UnknownField",
			yaml: "types: [{name: A, kind: boxed, color: red}]",
			want: "color",
		},
		{
			name: "Duplicate",
			yaml: "types: [{name: A, kind: boxed}, {name: A, kind: boxed}]",
			want: "declared twice",
		},
		{
			name: "DuplicateIdent",
			yaml: "types: [{name: A, kind: boxed}, {name: B, go: A, kind: boxed}]",
			want: "already in use",
		},
		{
			name: "UnknownKind",
			yaml: "types: [{name: A, kind: struct}]",
			want: "unknown kind",
		},
		{
			name: "EmptyEnum",
			yaml: "types: [{name: A, kind: enum}]",
			want: "no values",
		},
		{
			name: "FlagsOverflow",
			yaml: "types: [{name: A, kind: flags, values: [{nick: x, value: -1}]}]",
			want: "overflows uint32",
		},
		{
			name: "MissingNick",
			yaml: "types: [{name: A, kind: enum, values: [{value: 1}]}]",
			want: "no nick",
		},
		{
			name: "Orphan",
			yaml: "types: [{name: A, kind: derived}]",
			want: "requires a parent",
		},
		{
			name: "InterfacesOnEnum",
			yaml: "types: [{name: A, kind: enum, interfaces: [B], values: [{nick: x, value: 1}]}]",
			want: "cannot implement",
		},
		{
			name: "NoIdent",
			yaml: "types: [{name: '123', kind: boxed}]",
			want: "no valid Go identifier",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := manifest.Load(strings.NewReader(tt.yaml))
			assert.Nil(t, m)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDecl_names(t *testing.T) {
	t.Parallel()

	d := manifest.Decl{Name: "GstState", Prefix: "GST_STATE_"}
	assert.Equal(t, "GstState", d.Ident())
	assert.Equal(t, "GST_STATE_VOID_PENDING", d.MemberName(manifest.Member{Nick: "void-pending"}))
	assert.Equal(t, "CUSTOM", d.MemberName(manifest.Member{Nick: "x", Name: "CUSTOM"}))

	d.GoName = "State"
	assert.Equal(t, "State", d.Ident())
}
