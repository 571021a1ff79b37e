/*
Package compile turns named, typed parameters and the properties they should
drive into blend trees and layered state machines.

Every builder works against a Session, which owns the parameter space and the
clip registry of one regeneration pass. A session is discarded after the
pass; nothing is carried over between runs, so replaying the same builder
calls produces byte-identical controllers.

	s := compile.NewSession("Example")
	root := s.DirectTree("Root", s.Float("Example/C/DirectBlendWeight"))
	root.WithWeighted(s.HSVTree("Example/C/L1", []string{"Body"}, "material._Color"), s.Float("Example/C/DirectBlendWeight"))

	presets, err := s.PresetLayer("Main", "Example/C", defs, compile.PresetOptions{Randomize: true, CustomSlots: 1})
	if err != nil {
		return err
	}
	ctrl, err := s.Controller(s.TreeLayer("Base", root), presets)

Configuration errors (kind mismatches, malformed shapes) are sticky: the first
one is kept in the session and returned by Err and Controller, so a pass
aborts before anything is published.
*/
package compile
