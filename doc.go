// Package toolshed is a small retained-mode UI toolkit for [Ebitengine]
// built around monospaced bitmap fonts.
//
// Text is drawn from a [GlyphSheet]: one fixed-size cell per character. A
// [Writer] lays text out into the cells of a bounding box with word wrap,
// highlight, caret, shadow and underline, and returns a [RenderGrid] that
// maps every cell back to a text index. [TextField] uses that grid to turn
// pointer positions into cursor and selection changes.
//
// # Quick start
//
//	sheet, _ := toolshed.BuildGlyphSheet(basicfont.Face7x13, 7, 13)
//	w := toolshed.NewWriter(sheet)
//
//	ui := toolshed.NewUI(w)
//	ui.Insert(toolshed.NewTextField("name", image.Rect(20, 20, 160, 33)))
//
//	sm := toolshed.NewSceneManager()
//	sm.Insert("main", ui)
//	toolshed.Run(sm, w, toolshed.RunConfig{Title: "Demo", Width: 320, Height: 240, Scale: 2})
//
// For full control, implement [ebiten.Game] yourself and call
// [SceneManager.Update] and [SceneManager.Draw] with an [EbitenSurface].
//
// # Layout
//
// The grid of a box has Box.Dx()/cellW columns and Box.Dy()/cellH rows.
// Each row has one extra trailing slot holding the index that follows the
// row, and unused cells hold the text length, so every lookup is a valid
// caret position. Rows below the last line of text repeat it.
//
// Text fields resolve pointer positions against the grid from their last
// Draw. That grid is one frame behind any edit made since; indices are
// clamped to the current buffer.
//
// # Surfaces
//
// Drawing goes through the [Surface] interface. [EbitenSurface] draws on the
// GPU; [ImageSurface] draws into an *image.RGBA and needs no window, which
// is what the tests use.
//
// # Automation
//
// [SceneManager.InjectClick], [SceneManager.InjectText] and friends queue
// synthetic input consumed one event per frame, and [LoadTestScript] runs
// JSON scripts of clicks, drags, keystrokes and screenshots.
//
// [Ebitengine]: https://ebitengine.org
package toolshed
