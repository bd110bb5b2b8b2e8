package ros

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	Sep       = "/"
	GlobalNS  = "/"
	PrivateNS = "~"
	Remap     = ":="
)

type NameMap map[string]string

var validName = regexp.MustCompile(`^[~/]?([a-zA-Z]\w*/)*([a-zA-Z]\w*)?$`)

// getNamespace returns the parent namespace of name, with a trailing separator.
func getNamespace(name string) string {
	if len(name) == 0 {
		return GlobalNS
	}
	name = strings.TrimSuffix(name, Sep)
	result := name[:strings.LastIndex(name, Sep)+1]
	if len(result) == 0 {
		return GlobalNS
	}
	return result
}

// qualifyNodeName splits a node name into its namespace (with trailing
// separator) and base name.
func qualifyNodeName(nodeName string) (string, string, error) {
	if nodeName == "" {
		return "", "", errors.New("empty node name")
	}
	if strings.HasPrefix(nodeName, PrivateNS) {
		return "", "", errors.New("node name should not start with '~'")
	}
	if !validName.MatchString(nodeName) {
		return "", "", errors.Errorf("invalid node name %q", nodeName)
	}

	var components []string
	for _, c := range strings.Split(nodeName, Sep) {
		if len(c) > 0 {
			components = append(components, c)
		}
	}
	if len(components) == 0 {
		return "", "", errors.Errorf("invalid node name %q", nodeName)
	}
	last := len(components) - 1
	if last == 0 {
		return GlobalNS, components[0], nil
	}
	return GlobalNS + strings.Join(components[:last], Sep) + Sep, components[last], nil
}

// resolveName resolves name against namespace (which ends with a separator).
// Private names resolve under nodeName, the node's fully qualified name.
func resolveName(name, namespace, nodeName string) string {
	if len(name) == 0 {
		return namespace
	}
	canonName := canonicalizeName(name)
	switch {
	case isGlobalName(canonName):
		return canonName
	case isPrivateName(canonName):
		return canonicalizeName(nodeName + Sep + canonName[1:])
	default:
		return canonicalizeName(namespace + canonName)
	}
}

func isValidName(name string) bool {
	return validName.MatchString(name)
}

func isGlobalName(name string) bool {
	return strings.HasPrefix(name, GlobalNS)
}

func isPrivateName(name string) bool {
	return strings.HasPrefix(name, PrivateNS)
}

// Remove sequential separators and any trailing separator.
func canonicalizeName(name string) string {
	if name == GlobalNS || name == "" {
		return name
	}
	components := []string{}
	for _, word := range strings.Split(name, Sep) {
		if len(word) > 0 {
			components = append(components, word)
		}
	}
	if isGlobalName(name) {
		return GlobalNS + strings.Join(components, Sep)
	}
	return strings.Join(components, Sep)
}

// processArguments splits command line arguments into remappings
// (from:=to), private parameters (_param:=value), special keys
// (__name:=...) and everything else.
func processArguments(args []string) (mapping, params, specials NameMap, rest []string) {
	mapping = make(NameMap)
	params = make(NameMap)
	specials = make(NameMap)
	rest = make([]string, 0)
	for _, arg := range args {
		components := strings.Split(arg, Remap)
		if len(components) != 2 {
			rest = append(rest, arg)
			continue
		}
		key, value := components[0], components[1]
		switch {
		case strings.HasPrefix(key, "__"):
			specials[key] = value
		case strings.HasPrefix(key, "_"):
			params[key[1:]] = value
		default:
			mapping[key] = value
		}
	}
	return mapping, params, specials, rest
}

type NameResolver struct {
	namespace       string
	nodeName        string
	resolvedMapping NameMap
}

func newNameResolver(namespace, nodeName string, remapping NameMap) *NameResolver {
	n := &NameResolver{
		namespace:       namespace,
		nodeName:        nodeName,
		resolvedMapping: make(NameMap),
	}
	for k, v := range remapping {
		n.resolvedMapping[n.resolve(k)] = n.resolve(v)
	}
	return n
}

// resolve returns the fully qualified form of name without remapping.
func (n *NameResolver) resolve(name string) string {
	return resolveName(name, n.namespace, n.nodeName)
}

// remap resolves name and applies any command line remapping.
func (n *NameResolver) remap(name string) string {
	r := n.resolve(name)
	if remapped, ok := n.resolvedMapping[r]; ok {
		return remapped
	}
	return r
}
