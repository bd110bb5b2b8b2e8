package ros

import (
	"testing"
)

func TestNameValidation(t *testing.T) {
	positives := [...]string{
		"",
		"/",
		"~",
		"foo",
		"foo/",
		"foo/bar",
		"foo/bar/",
		"foo_0/bar1_/",
		"/foo",
		"/foo/",
		"/foo/bar",
		"/foo/bar/",
		"~foo",
		"~foo/",
		"~foo/bar",
		"~foo/bar/",
		"/move_base_simple/goal",
	}
	for _, p := range positives {
		if !isValidName(p) {
			t.Error(p)
		}
	}

	negatives := [...]string{
		"foo//bar",
		"^foo//bar",
		"//foo",
		"0foo",
		"_0foo",
		"foo/0bar",
		"foo/_bar",
		"foo/~bar",
		"foo bar",
	}
	for _, n := range negatives {
		if isValidName(n) {
			t.Error(n)
		}
	}
}

func TestCanonicalizeName(t *testing.T) {
	cases := map[string]string{
		"/":                "/",
		"/foo//bar/":       "/foo/bar",
		"foo//bar///baz/":  "foo/bar/baz",
		"~foo//bar///baz/": "~foo/bar/baz",
	}
	for in, expected := range cases {
		if got := canonicalizeName(in); got != expected {
			t.Errorf("canonicalizeName(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestSpecialNamespace(t *testing.T) {
	if !isGlobalName("/foo") || isGlobalName("~foo") || isGlobalName("foo") {
		t.Error("isGlobalName")
	}
	if isPrivateName("/foo") || !isPrivateName("~foo") || isPrivateName("foo") {
		t.Error("isPrivateName")
	}
}

func TestQualifyNodeName(t *testing.T) {
	cases := []struct {
		in, namespace, name string
	}{
		{"auto_navigation", "/", "auto_navigation"},
		{"/auto_navigation", "/", "auto_navigation"},
		{"robot1/auto_navigation", "/robot1/", "auto_navigation"},
		{"/a/b/node", "/a/b/", "node"},
	}
	for _, c := range cases {
		namespace, name, err := qualifyNodeName(c.in)
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if namespace != c.namespace || name != c.name {
			t.Errorf("%s: got (%q, %q)", c.in, namespace, name)
		}
	}

	for _, bad := range []string{"", "~node", "0node", "/"} {
		if _, _, err := qualifyNodeName(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestResolution(t *testing.T) {
	cases := []struct {
		namespace, node, name, expected string
	}{
		{"/", "/node1", "bar", "/bar"},
		{"/", "/node1", "/bar", "/bar"},
		{"/", "/node1", "~bar", "/node1/bar"},
		{"/go/", "/go/node2", "bar", "/go/bar"},
		{"/go/", "/go/node2", "/bar", "/bar"},
		{"/go/", "/go/node2", "~bar", "/go/node2/bar"},
		{"/go/", "/go/node3", "foo/bar", "/go/foo/bar"},
		{"/go/", "/go/node3", "~foo/bar", "/go/node3/foo/bar"},
		{"/go/", "/go/node3", "", "/go/"},
	}
	for _, c := range cases {
		resolver := newNameResolver(c.namespace, c.node, NameMap{})
		if result := resolver.resolve(c.name); result != c.expected {
			t.Errorf("resolve(%q) in %s = %q, expected %q", c.name, c.namespace, result, c.expected)
		}
	}
}

func TestNameMap(t *testing.T) {
	cases := []struct {
		namespace string
		mapping   NameMap
		name      string
		expected  string
	}{
		{"/", NameMap{"foo": "bar"}, "foo", "/bar"},
		{"/", NameMap{"foo": "bar"}, "/foo", "/bar"},
		{"/baz/", NameMap{"foo": "bar"}, "foo", "/baz/bar"},
		{"/baz/", NameMap{"foo": "bar"}, "/baz/foo", "/baz/bar"},
		{"/", NameMap{"/foo": "bar"}, "foo", "/bar"},
		{"/baz/", NameMap{"/foo": "bar"}, "/foo", "/baz/bar"},
		{"/baz/", NameMap{"/foo": "/a/b/c/bar"}, "/foo", "/a/b/c/bar"},
		{"/", NameMap{"odom": "/robot/odom"}, "/odom", "/robot/odom"},
		{"/", NameMap{"odom": "/robot/odom"}, "/other", "/other"},
	}
	for _, c := range cases {
		resolver := newNameResolver(c.namespace, c.namespace+"mynode", c.mapping)
		if result := resolver.remap(c.name); result != c.expected {
			t.Errorf("remap(%q) with %v = %q, expected %q", c.name, c.mapping, result, c.expected)
		}
	}
}

func TestGetNamespace(t *testing.T) {
	cases := map[string]string{
		"":             "/",
		"/":            "/",
		"/foo":         "/",
		"/foo/":        "/",
		"/foo/bar":     "/foo/",
		"/foo/bar/baz": "/foo/bar/",
	}
	for in, expected := range cases {
		if ns := getNamespace(in); ns != expected {
			t.Errorf("getNamespace(%q) = %q, expected %q", in, ns, expected)
		}
	}
}

func TestProcessArguments(t *testing.T) {
	args := []string{
		"foo:=bar",
		"_param:=value",
		"__master:=http://localhost:11311",
		"-mode",
		"simple",
	}

	mapping, params, specials, rest := processArguments(args)
	if mapping["foo"] != "bar" {
		t.Error(mapping)
	}
	if params["param"] != "value" {
		t.Error(params)
	}
	if specials["__master"] != "http://localhost:11311" {
		t.Error(specials)
	}
	if len(rest) != 2 || rest[0] != "-mode" || rest[1] != "simple" {
		t.Error(rest)
	}
}
