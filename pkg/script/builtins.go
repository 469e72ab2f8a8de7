package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/sealcase/sealcase/pkg/enclosure"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms sealcase Lisp source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: cut-top -> cut_top
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: cut-top -> cut_top. Only when
		// the hyphen sits between identifier characters, so a minus
		// operator is left alone.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpScrews carries the fastener sub-declaration between builtins.
type sexpScrews struct {
	apply func(*enclosure.Params)
	desc  string
}

func (s *sexpScrews) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(screws %s)", s.desc)
}
func (s *sexpScrews) Type() *zygo.RegisteredType { return nil }

// sexpGasket carries the gasket sub-declaration between builtins.
type sexpGasket struct {
	apply func(*enclosure.Params)
	desc  string
}

func (s *sexpGasket) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(gasket %s)", s.desc)
}
func (s *sexpGasket) Type() *zygo.RegisteredType { return nil }

// sexpMount carries the mount holder sub-declaration between builtins.
type sexpMount struct {
	apply func(*enclosure.Params)
	desc  string
}

func (s *sexpMount) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mount %s)", s.desc)
}
func (s *sexpMount) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the normalized keyword name (hyphens as underscores) and true.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		name := str.S[len(kwPrefix):]
		return strings.ReplaceAll(name, "-", "_"), true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_outside-box) and plain strings.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// enumValue converts a keyword like :outside-box to its configuration
// name OUTSIDE_BOX.
func enumValue(s zygo.Sexp) (string, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")), nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector receives the parameter set declared by the script.
type collector struct {
	params *enclosure.Params
}

// setFloat assigns a keyword number to a field when present.
func setFloat(pa kwArgs, name string, dst *float64, scope string) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", scope, name, err)
	}
	*dst = f
	return nil
}

// setBool assigns a keyword boolean to a field when present.
func setBool(pa kwArgs, name string, dst *bool, scope string) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", scope, name, err)
	}
	*dst = b
	return nil
}

// registerBuiltins installs the sealcase DSL builtins into a zygomys
// environment. The builtins collect overrides on top of the default
// parameter set; validation happens later in the enclosure package.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// -----------------------------------------------------------------------
	// (screws :hole-diameter 3.3 :head-diameter 6 :length 16
	//         :location :outside-box :type :with-square-nut
	//         :nut-width 5.5 :nut-height 1.8 :nut-workaround :add-ceiling
	//         :corner true :middle-length false :middle-width false)
	// -----------------------------------------------------------------------
	env.AddFunction("screws", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		stage := enclosure.DefaultParams()
		p := &stage

		if err := setFloat(pa, "hole_diameter", &p.ScrewHoleDiameter, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "head_diameter", &p.ScrewHeadDiameter, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "length", &p.ScrewTotalLength, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["location"]; ok {
			ev, err := enumValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: location: %w", err)
			}
			loc, err := enclosure.ParseScrewLocation(ev)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: %w", err)
			}
			p.ScrewLocation = loc
		}
		if v, ok := pa.kw["type"]; ok {
			ev, err := enumValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: type: %w", err)
			}
			st, err := enclosure.ParseScrewType(ev)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: %w", err)
			}
			p.ScrewType = st
		}
		if err := setFloat(pa, "nut_width", &p.SquareNutWidth, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "nut_height", &p.SquareNutHeight, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["nut_workaround"]; ok {
			ev, err := enumValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: nut-workaround: %w", err)
			}
			wa, err := enclosure.ParseNutWorkaround(ev)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("screws: %w", err)
			}
			p.NutWorkaround = wa
		}
		if err := setBool(pa, "corner", &p.CornerScrews, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "middle_length", &p.MiddleLengthScrews, "screws"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "middle_width", &p.MiddleWidthScrews, "screws"); err != nil {
			return zygo.SexpNull, err
		}

		src := stage
		return &sexpScrews{
			desc: fmt.Sprintf(":hole %.1f :head %.1f", src.ScrewHoleDiameter, src.ScrewHeadDiameter),
			apply: func(out *enclosure.Params) {
				out.ScrewHoleDiameter = src.ScrewHoleDiameter
				out.ScrewHeadDiameter = src.ScrewHeadDiameter
				out.ScrewTotalLength = src.ScrewTotalLength
				out.ScrewLocation = src.ScrewLocation
				out.ScrewType = src.ScrewType
				out.SquareNutWidth = src.SquareNutWidth
				out.SquareNutHeight = src.SquareNutHeight
				out.NutWorkaround = src.NutWorkaround
				out.CornerScrews = src.CornerScrews
				out.MiddleLengthScrews = src.MiddleLengthScrews
				out.MiddleWidthScrews = src.MiddleWidthScrews
			},
		}, nil
	})

	// -----------------------------------------------------------------------
	// (gasket :height 1.6 :width 1.2 :spacing 0.15 :compression 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("gasket", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		stage := enclosure.DefaultParams()
		p := &stage

		if err := setFloat(pa, "height", &p.GasketHeight, "gasket"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "width", &p.GasketWidth, "gasket"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "spacing", &p.GasketSpacing, "gasket"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "compression", &p.GasketCompression, "gasket"); err != nil {
			return zygo.SexpNull, err
		}

		src := stage
		return &sexpGasket{
			desc: fmt.Sprintf("%.1fx%.1f", src.GasketWidth, src.GasketHeight),
			apply: func(out *enclosure.Params) {
				out.GasketHeight = src.GasketHeight
				out.GasketWidth = src.GasketWidth
				out.GasketSpacing = src.GasketSpacing
				out.GasketCompression = src.GasketCompression
			},
		}, nil
	})

	// -----------------------------------------------------------------------
	// (mount :length 15 :hole-diameter 5 :head-diameter 9 :fillet true)
	// -----------------------------------------------------------------------
	env.AddFunction("mount", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		stage := enclosure.DefaultParams()
		p := &stage
		p.MountHolders = true

		if err := setFloat(pa, "length", &p.MountHolderLength, "mount"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "hole_diameter", &p.MountHolderHoleDiameter, "mount"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "head_diameter", &p.MountHolderHeadDiameter, "mount"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "fillet", &p.MountHolderFillet, "mount"); err != nil {
			return zygo.SexpNull, err
		}

		src := stage
		return &sexpMount{
			desc: fmt.Sprintf(":length %.1f", src.MountHolderLength),
			apply: func(out *enclosure.Params) {
				out.MountHolders = true
				out.MountHolderLength = src.MountHolderLength
				out.MountHolderHoleDiameter = src.MountHolderHoleDiameter
				out.MountHolderHeadDiameter = src.MountHolderHeadDiameter
				out.MountHolderFillet = src.MountHolderFillet
			},
		}, nil
	})

	// -----------------------------------------------------------------------
	// (enclosure :inner-width 170 :inner-length 240 :inner-height 31
	//            :cut-top 5 :layer-height 0.28
	//            :screws (screws ...) :gasket (gasket ...) :mount (mount ...)
	//            :fillet-bottom true :fillet-top true)
	// -----------------------------------------------------------------------
	env.AddFunction("enclosure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if c.params != nil {
			return zygo.SexpNull, fmt.Errorf("enclosure: already declared; a script declares exactly one enclosure")
		}
		pa := parseArgs(args)
		p := enclosure.DefaultParams()
		p.MountHolders = false // opt back in with :mount

		if err := setFloat(pa, "inner_width", &p.InnerWidth, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "inner_length", &p.InnerLength, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "inner_height", &p.InnerHeight, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "cut_top", &p.CutTop, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "layer_height", &p.LayerHeight, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "actual_inner_width", &p.ActualInnerWidth, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "actual_inner_length", &p.ActualInnerLength, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "fillet_bottom", &p.FilletBottom, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if err := setBool(pa, "fillet_top", &p.FilletTop, "enclosure"); err != nil {
			return zygo.SexpNull, err
		}

		if v, ok := pa.kw["screws"]; ok {
			s, ok := v.(*sexpScrews)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("enclosure: screws: expected (screws ...), got %T", v)
			}
			s.apply(&p)
		}
		if v, ok := pa.kw["gasket"]; ok {
			g, ok := v.(*sexpGasket)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("enclosure: gasket: expected (gasket ...), got %T", v)
			}
			g.apply(&p)
		}
		if v, ok := pa.kw["mount"]; ok {
			m, ok := v.(*sexpMount)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("enclosure: mount: expected (mount ...), got %T", v)
			}
			m.apply(&p)
		}

		c.params = &p
		return zygo.SexpNull, nil
	})
}
