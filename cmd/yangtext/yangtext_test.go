package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/changelog"
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/textsyntax"
	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exYANG = `module ex {
  namespace "urn:ex";
  prefix e;
  revision 2024-02-01;
  container sys {
    leaf hostname { type string; }
    list entry {
      key id;
      leaf id { type uint32; }
      leaf val { type string; }
    }
  }
}
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func testConfig(t *testing.T) *MainConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := &MainConfig{Yang: writeFile(t, dir, "ex.yang", exYANG), Err: &bytes.Buffer{}}
	require.NoError(t, cfg.setup())
	return cfg
}

func TestLoadFileConfig(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.yaml", `
yang: [a.yang, modules]
mode: module-next
level: 1
skip-top: false
ignore-errors: true
changelog: changelog.xml
`)
	cfg, err := LoadFileConfig(path)
	if !check.NoError(err) {
		return
	}
	check.Equal([]string{"a.yang", "modules"}, cfg.Yang)
	check.Equal("module-next", cfg.Mode)
	check.Equal(1, cfg.Level)
	if check.NotNil(cfg.SkipTop) {
		check.False(*cfg.SkipTop)
	}
	check.True(cfg.IgnoreErrors)
	check.Equal("changelog.xml", cfg.Changelog)

	for name, data := range map[string]string{
		"mode":  "mode: sideways\n",
		"level": "level: -1\n",
		"yaml":  "yang: [\n",
	} {
		_, err := LoadFileConfig(writeFile(t, dir, name+".yaml", data))
		check.Error(err, name)
	}
	_, err = LoadFileConfig(filepath.Join(dir, "none.yaml"))
	check.Error(err)
}

func TestSetup(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	yangDir := filepath.Join(dir, "yang")
	require.NoError(t, os.Mkdir(yangDir, 0o755))
	writeFile(t, yangDir, "ex.yang", exYANG)
	cfgPath := writeFile(t, dir, "cfg.yaml", "mode: module-next\nignore-errors: true\n")

	cfg := &MainConfig{Dirs: yangDir, Config: cfgPath}
	if !check.NoError(cfg.setup()) {
		return
	}
	check.Equal(bind.ModeModuleNext, cfg.Mode)
	check.True(cfg.Ignore)
	if check.NotNil(cfg.Spec) {
		check.NotNil(cfg.Spec.FindTop("sys", "ex"))
	}

	cfg = &MainConfig{}
	check.NoError(cfg.setup())
	check.Nil(cfg.Spec, "no modules")
	check.Equal(bind.ModeModule, cfg.Mode)
	check.Nil(cfg.decodeOpts())

	cfg = &MainConfig{Next: true}
	check.NoError(cfg.setup())
	check.Equal(bind.ModeModuleNext, cfg.Mode)

	cfg = &MainConfig{Yang: filepath.Join(dir, "missing.yang")}
	check.Error(cfg.setup())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}

func TestEncodeOpts(t *testing.T) {
	check := assert.New(t)
	cfg := &MainConfig{}
	check.Len(cfg.encodeOpts(), 1, "skips top by default")

	off := false
	cfg.File = &FileConfig{SkipTop: &off, Level: 2}
	check.Len(cfg.encodeOpts(), 1, "level only")
}

func TestReadInputs(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a;")
	b := writeFile(t, dir, "b.txt", "b;")
	cc := &cli.Context{In: io.NopCloser(strings.NewReader("in;"))}

	ins, err := readInputs(cc, []string{a, "-", b})
	if check.NoError(err) && check.Len(ins, 3) {
		check.Equal(input{name: a, data: []byte("a;")}, ins[0])
		check.Equal(input{name: stdinName, data: []byte("in;")}, ins[1])
		check.Equal(input{name: b, data: []byte("b;")}, ins[2])
	}

	cc.In = io.NopCloser(strings.NewReader("x;"))
	ins, err = readInputs(cc, nil)
	if check.NoError(err) && check.Len(ins, 1) {
		check.Equal(stdinName, ins[0].name)
	}
	_, err = readInputs(cc, []string{filepath.Join(dir, "none.txt")})
	check.Error(err)
}

func TestFormatDoc(t *testing.T) {
	cfg := testConfig(t)
	for _, tc := range []struct {
		name, input, want string
		invalid, fails    bool
	}{
		{
			name:  "canonical order",
			input: "ex:sys { entry 2; hostname r1; entry 1 { val x; } }",
			want:  "ex:sys {\n    hostname r1;\n    entry 1 {\n        val x;\n    }\n    entry 2 {\n    }\n}\n",
		},
		{
			name:  "already formatted",
			input: "ex:sys {\n    hostname r1;\n}\n",
			want:  "ex:sys {\n    hostname r1;\n}\n",
		},
		{name: "invalid", input: "ex:sys { hostname a b; }", invalid: true},
		{name: "syntax", input: "ex:sys {", fails: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			out, err := formatDoc(cfg, []byte(tc.input))
			switch {
			case tc.fails:
				check.Error(err)
				check.Empty(out)
			case tc.invalid:
				_, ok := bind.IsInvalid(err)
				check.True(ok, "got %v", err)
				check.NotEmpty(out)
			default:
				check.NoError(err)
				check.Equal(tc.want, out)
			}
		})
	}
}

func TestReport(t *testing.T) {
	check := assert.New(t)
	cfg := testConfig(t)
	stderr := cfg.Err.(*bytes.Buffer)

	ok, failed := cfg.report("a", nil)
	check.True(ok)
	check.False(failed)
	check.Empty(stderr.String())

	_, err := formatDoc(cfg, []byte("ex:sys { hostname a b; }"))
	ok, failed = cfg.report("b", err)
	check.False(ok)
	check.True(failed)
	check.Contains(stderr.String(), "b: invalid: ")
	check.Contains(stderr.String(), "<rpc-reply")
	check.Contains(stderr.String(), "<error-severity>error</error-severity>")

	stderr.Reset()
	cfg.Ignore = true
	ok, failed = cfg.report("c", err)
	check.True(ok, "ignored")
	check.False(failed)
	check.Contains(stderr.String(), "<error-severity>warning</error-severity>")

	stderr.Reset()
	_, err = formatDoc(cfg, []byte("ex:sys {"))
	ok, failed = cfg.report("d", err)
	check.False(ok, "hard errors are not ignored")
	check.True(failed)
	check.True(strings.HasPrefix(stderr.String(), "d: text syntax error"), stderr.String())
	check.Contains(stderr.String(), "<error-tag>malformed-message</error-tag>")
	check.Error(exitStatus(failed))
	check.NoError(exitStatus(false))
}

func TestWriteDiff(t *testing.T) {
	check := assert.New(t)
	var buf bytes.Buffer
	writeDiff(&buf, "f", "x {\n  a;\n}\n", "x {\n    a;\n}\n", false)
	check.Equal("--- f\n+++ f (formatted)\n@@ 2 @@\n-  a;\n+    a;\n", buf.String())

	buf.Reset()
	writeDiff(&buf, "f", "a;\nb;\nc;\n", "a;\nc;\nd;\n", false)
	check.Equal("--- f\n+++ f (formatted)\n@@ 2 @@\n-b;\n@@ 4 @@\n+d;\n", buf.String())

	buf.Reset()
	writeDiff(&buf, "f", "a;\n", "b;\n", true)
	check.Contains(buf.String(), "\x1b[", "colored")
}

func TestConvert(t *testing.T) {
	check := assert.New(t)
	cfg := testConfig(t)
	top, err := textsyntax.DecodeString("ex:sys { hostname r1; }", cfg.decodeOpts()...)
	if !check.NoError(err) {
		return
	}
	var buf bytes.Buffer
	check.NoError(writeXML(&buf, top, "  ", true))
	xml := buf.String()
	check.Equal("<sys xmlns=\"urn:ex\">\n  <hostname>r1</hostname>\n</sys>\n", xml)

	out, err := textDoc(cfg, []byte(xml))
	check.NoError(err)
	check.Equal("ex:sys {\n    hostname r1;\n}\n", out)

	_, err = textDoc(cfg, []byte(`<sys xmlns="urn:ex"><nope/></sys>`))
	_, ok := bind.IsInvalid(err)
	check.True(ok, "got %v", err)

	_, err = textDoc(cfg, []byte(`<sys`))
	check.Error(err)

	out, err = textDoc(&MainConfig{}, []byte(`<a><b>1</b></a>`))
	check.NoError(err)
	check.Equal("a {\n    b 1;\n}\n", out, "without modules")
}

func TestQueryDoc(t *testing.T) {
	cfg := testConfig(t)
	top, err := textsyntax.DecodeString("ex:sys { hostname r1; entry 7 { val x; } entry 8; }", cfg.decodeOpts()...)
	require.NoError(t, err)
	for _, tc := range []struct {
		expr, want string
	}{
		{"//entry[id=7]", "entry 7 {\n    val x;\n}\n"},
		{"/sys/hostname", "hostname r1;\n"},
		{"//hostname/text()", "r1\n"},
		{"count(//entry)", "2\n"},
		{"//nothing", ""},
	} {
		t.Run(tc.expr, func(t *testing.T) {
			var buf bytes.Buffer
			if assert.NoError(t, queryDoc(&buf, top, tc.expr)) {
				assert.Equal(t, tc.want, buf.String())
			}
		})
	}
	assert.Error(t, queryDoc(&bytes.Buffer{}, top, "//["))
}

const changelogXML = `<yang-modules xmlns="http://clicon.org/xml-changelog">
  <module>
    <name>ex</name>
    <revision>2024-02-01</revision>
    <revision-change-log>
      <index>0001</index>
      <change-operation>create</change-operation>
      <data-definition>
        <target-node>/e:sys/e:hostname</target-node>
      </data-definition>
    </revision-change-log>
  </module>
</yang-modules>
`

func TestWriteUpgrade(t *testing.T) {
	check := assert.New(t)
	cfg := testConfig(t)
	c, err := changelog.Load(strings.NewReader(changelogXML))
	if !check.NoError(err) {
		return
	}
	var buf bytes.Buffer
	check.NoError(writeUpgrade(&buf, c, cfg.Spec))
	check.Equal("ex@2024-02-01 0001 create /e:sys/e:hostname\n", buf.String())

	buf.Reset()
	spec := schema.NewSpec()
	spec.AddModule("ex", "e", "urn:ex")
	check.NoError(writeUpgrade(&buf, c, spec))
	check.Empty(buf.String(), "no revision")
}
