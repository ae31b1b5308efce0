package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/cardstock/pkg/card"
	"github.com/chazu/cardstock/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms card script source before handing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keyword symbols need no global registration and cannot collide with
//     user variables.
//
//  2. Kebab-case to underscore: corner-steps -> corner_steps. zygomys reads
//     a hyphen inside an identifier as subtraction.
//
//  3. Lisp ; line comments become zygomys // comments.
//
// All three transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			// Copy double-quoted strings untouched, honoring escapes.
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

		case b[i] == '`':
			// Copy backtick strings untouched.
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

		case b[i] == ';':
			// ; and ;; comments -> //
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			// Preserve := assignment.
			result = append(result, ':', '=')
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			// :keyword -> "__kw_keyword", with kebab-case normalized so
			// builtins see one spelling.
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			for _, c := range b[i+1 : j] {
				if c == '-' {
					c = '_'
				}
				result = append(result, c)
			}
			result = append(result, '"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Hyphen between identifier characters is part of a kebab-case
			// name, not a minus operator.
			result = append(result, '_')
			i++

		default:
			result = append(result, b[i])
			i++
		}
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
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVec3 wraps a scene.Vec3 so positions can be passed between builtins.
type sexpVec3 struct {
	vec scene.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3g %.3g %.3g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpCard wraps a staged card spec so scripts can refer to it.
type sexpCard struct {
	spec card.Spec
}

func (c *sexpCard) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(card %q %gx%g)", c.spec.Name, c.spec.Width, c.spec.Height)
}
func (c *sexpCard) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
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
				// Keyword at end with no value — treat as flag with nil.
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

// float extracts a keyword argument as float64, leaving dst untouched when
// the keyword is absent.
func (a kwArgs) float(name string, dst *float64) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// integer extracts a keyword argument as int.
func (a kwArgs) integer(name string, dst *int) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = int(f)
	return nil
}

// str extracts a keyword argument as string.
func (a kwArgs) str(name string, dst *string) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = s
	return nil
}

// vec extracts a keyword argument as a Vec3.
func (a kwArgs) vec(name string, dst *scene.Vec3) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	w, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = w
	return nil
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

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (scene.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return scene.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the card script builtins into a zygomys
// environment. The builtins populate the provided Script during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, script *Script) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 numbers, got %d args", len(args))
		}
		var v scene.Vec3
		var err error
		if v.X, err = toFloat64(args[0]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		if v.Y, err = toFloat64(args[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		if v.Z, err = toFloat64(args[2]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (card :width 1.0 :height 0.6 :radius 0.06 :thickness 0.01
	//       :corner-steps 24 :name "BlackCard" :at (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("card", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := card.DefaultSpec()

		if err := pa.float("width", &spec.Width); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.float("height", &spec.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.float("radius", &spec.Radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.float("thickness", &spec.Thickness); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.integer("corner_steps", &spec.CornerSteps); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.str("name", &spec.Name); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if err := pa.vec("at", &spec.Position); err != nil {
			return zygo.SexpNull, fmt.Errorf("card: %w", err)
		}
		if len(script.Cards) > 0 && spec.Name == card.DefaultSpec().Name {
			// Keep object names unique when a script stages several cards
			// without naming them.
			spec.Name = fmt.Sprintf("%s.%03d", spec.Name, len(script.Cards))
		}

		script.Cards = append(script.Cards, spec)
		return &sexpCard{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (material :name "BlackMaterial" :base-color (vec3 0 0 0) :alpha 1
	//           :roughness 0.6 :specular 0.03)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		setup := &script.Setup

		if err := pa.str("name", &setup.MaterialName); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		if v, ok := pa.kw["base_color"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: base-color: %w", err)
			}
			setup.BaseColor[0] = c.X
			setup.BaseColor[1] = c.Y
			setup.BaseColor[2] = c.Z
		}
		if err := pa.float("alpha", &setup.BaseColor[3]); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		if err := pa.float("roughness", &setup.Roughness); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		if err := pa.float("specular", &setup.Specular); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (camera :at (vec3 0 -1.6 0.5) :tilt 70 :fov 39.6)
	// (camera :at (vec3 ...) :rotate (vec3 70 0 15))
	// -----------------------------------------------------------------------
	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cam := &script.Setup.Camera

		if err := pa.vec("at", &cam.Position); err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %w", err)
		}
		if err := pa.vec("rotate", &cam.RotationDeg); err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %w", err)
		}
		// :tilt is shorthand for rotation about X only.
		if v, ok := pa.kw["tilt"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: tilt: %w", err)
			}
			cam.RotationDeg = scene.Vec3{X: f}
		}
		if err := pa.float("fov", &cam.FOVDeg); err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (light :at (vec3 1.2 -0.8 1.2) :energy 500 :size 0.25 :name "KeyLight")
	// -----------------------------------------------------------------------
	env.AddFunction("light", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		l := &script.Setup.Light

		if err := pa.str("name", &l.Name); err != nil {
			return zygo.SexpNull, fmt.Errorf("light: %w", err)
		}
		if err := pa.vec("at", &l.Position); err != nil {
			return zygo.SexpNull, fmt.Errorf("light: %w", err)
		}
		if err := pa.float("energy", &l.Energy); err != nil {
			return zygo.SexpNull, fmt.Errorf("light: %w", err)
		}
		if err := pa.float("size", &l.Size); err != nil {
			return zygo.SexpNull, fmt.Errorf("light: %w", err)
		}
		return zygo.SexpNull, nil
	})
}
