// Package renderer turns a scene tree into styled terminal output.
//
// The renderer is responsible for:
//   - Rendering the scene tree into spans, one set per row
//   - Resolving overlaps so later-painted nodes cover earlier ones
//   - Checking the resolved rows against the canvas width
//   - Serializing rows into truecolor escape-coded lines
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│      Renderer (Compositor + Writer)     │
//	├─────────────────────────────────────────┤
//	│   Scene tree  │ Occlusion │   Frame     │
//	├─────────────────────────────────────────┤
//	│  ANSI text lines  │  Terminal (tcell)   │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	canvas := scene.NewCanvas(rows, cols, core.DefaultStyle())
//	canvas.AddChild(scene.NewNode(core.Vec(1, 2), core.Vec(3, 10), "hi", style))
//	r := renderer.New(os.Stdout, renderer.DefaultOptions())
//	r.Render(canvas)
package renderer
