package codegen

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Manu343726/isagen/pkg/utils"
)

// Language the artifacts are generated for
type Target string

const (
	Target_Cpp Target = "cpp"
	Target_Go  Target = "go"
)

var ErrUnknownTarget = errors.New("unknown generation target")
var ErrInvalidOptions = errors.New("invalid generator options")

// Artifacts generated for each target, in generation order
var targetArtifacts = map[Target][]string{
	Target_Cpp: {"opcode.h", "opcode_name_map.h", "opcode_name_map.cpp", "opcode_lookup.cpp"},
	Target_Go:  {"opcode.go", "opcode_name_map.go", "opcode_lookup.go"},
}

var targetLanguages = map[Target]utils.Language{
	Target_Cpp: utils.Language_Cpp,
	Target_Go:  utils.Language_Go,
}

// Returns the names of all supported targets
func Targets() []string {
	return utils.Map(utils.SortedKeys(targetArtifacts), func(t Target) string { return string(t) })
}

// Returns the names of the files generated for the target, in generation order
func (t Target) Artifacts() []string {
	return append([]string(nil), targetArtifacts[t]...)
}

// Parses a target name (case insensitive)
func ParseTarget(name string) (Target, error) {
	target := Target(strings.ToLower(name))

	if _, supported := targetArtifacts[target]; !supported {
		return "", utils.MakeError(ErrUnknownTarget, "'%v' (supported targets: %v)", name, strings.Join(Targets(), ", "))
	}

	return target, nil
}

// Controls how artifacts are rendered
type Options struct {
	Target Target
	// C++ namespace the generated declarations live in
	Namespace string
	// Prefix of the C++ include guard macros
	GuardPrefix string
	// Go package name of the generated files
	Package string
}

// Returns the options matching the reference C++ runtime layout
func DefaultOptions() Options {
	return Options{
		Target:      Target_Cpp,
		Namespace:   "evm::isa",
		GuardPrefix: "EVM_ISA",
		Package:     "isa",
	}
}

var (
	namespacePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)
	guardPrefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	packagePattern     = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Checks the options can produce valid code
func (o Options) Validate() error {
	if _, supported := targetArtifacts[o.Target]; !supported {
		return utils.MakeError(ErrUnknownTarget, "'%v' (supported targets: %v)", o.Target, strings.Join(Targets(), ", "))
	}

	switch o.Target {
	case Target_Cpp:
		if !namespacePattern.MatchString(o.Namespace) {
			return utils.MakeError(ErrInvalidOptions, "'%v' is not a valid C++ namespace", o.Namespace)
		}
		if !guardPrefixPattern.MatchString(o.GuardPrefix) {
			return utils.MakeError(ErrInvalidOptions, "'%v' is not a valid include guard prefix", o.GuardPrefix)
		}
	case Target_Go:
		if !packagePattern.MatchString(o.Package) {
			return utils.MakeError(ErrInvalidOptions, "'%v' is not a valid Go package name", o.Package)
		}
	}

	return nil
}
