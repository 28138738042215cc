// Package tools provides template-engine helper utilities, built around
// a managed iteration controller that gives templates imperative
// control over their loops.
//
// Host templating languages usually have no native break or continue.
// The LoopTool fills that gap: a template hands each loop source to
// Watch and drives the returned ManagedIterator with its native loop
// construct, and from inside the loop body it can stop the current
// loop, stop a named enclosing loop, skip ahead, or ask whether the
// loop is on its first or last iteration.
//
// # Quick Start
//
//	loop := tools.NewLoopTool()
//	items := loop.Watch([]string{"a", "b", "c"})
//	for items.HasNext() {
//		item, err := items.Next()
//		if err != nil {
//			break
//		}
//		fmt.Println(item, loop.Depth())
//		if last, ok := loop.IsLast(); ok && last {
//			fmt.Println("that was the last one")
//		}
//	}
//
// # Loop Control
//
// Loops nest: each Watch pushes onto a stack, and a finished loop takes
// itself back off, so commands always reach the innermost loop unless a
// name says otherwise:
//
//	outer := loop.Watch(rows, "rows")
//	for outer.HasNext() {
//		row, _ := outer.Next()
//		inner := loop.Watch(row)
//		for inner.HasNext() {
//			cell, _ := inner.Next()
//			if cell == nil {
//				loop.StopTo("rows") // stop the row loop and this one
//			}
//		}
//	}
//
// Iterators can also filter themselves. Conditions registered through
// Exclude, StopOn or Condition are checked against each element before
// it is yielded:
//
//	it := loop.Watch(values).Exclude("").StopOn("EOF")
//
// Watch accepts slices, arrays, maps (iterated by value in sorted key
// order), channels, anything implementing Iterator, and treats any
// other value as a one-element sequence. Sources that cannot be
// adapted make Watch return nil, which every LoopTool and
// ManagedIterator method tolerates quietly.
//
// # Toolbox Configuration
//
// Tools reach templates through scoped toolboxes. A ToolboxFactory
// registers tools (the LoopTool ships registered under "loop" in
// request scope), optionally takes a configuration loaded by the
// config subpackage from a YAML or TOML file, and creates a toolbox
// per scope:
//
//	factory := tools.NewToolboxFactory()
//	cfg, err := config.LoadFile("tools.yaml")
//	if err == nil {
//		err = factory.Configure(cfg)
//	}
//	box, err := factory.CreateToolbox(tools.ScopeRequest)
//	loop, ok := box.Get("loop")
//
// # Thread Safety
//
// A LoopTool and its ManagedIterators serve exactly one rendering pass
// and are not safe for concurrent use; create one per request via a
// request-scoped toolbox. The ToolboxFactory itself is safe for
// concurrent registration and toolbox creation.
package tools
