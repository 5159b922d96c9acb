// Package macro compiles recorded draw operations into immutable,
// replayable vertex batches.
//
// # Overview
//
// A macro freezes a sequence of draw operations, each carrying its own
// render state (alpha mode, texture, transform), into an ordered list of
// vertex batches. The macro can then be drawn any number of times, at any
// later point, stretched over any axis-aligned destination rectangle,
// without re-recording.
//
// # Quick Start
//
//	s := sink.New()
//	m, err := queue.Record(s, 64, 64, func(q *queue.Queue) error {
//	    if err := q.DrawQuad(macro.Rect(0, 0, 32, 32), 0, macro.AlphaModeDefault); err != nil {
//	        return err
//	    }
//	    q.PushTransform(macro.Translate(32, 32))
//	    if err := q.DrawImage(tile, macro.Rect(0, 0, 32, 32), 0, macro.AlphaModeAdditive); err != nil {
//	        return err
//	    }
//	    return q.PopTransform()
//	})
//	if err != nil {
//	    return err
//	}
//
//	_ = m.DrawAt(10, 10, 1)                                       // natural size
//	_ = m.Draw(macro.Rect(100, 0, 128, 32), 1, macro.AlphaModeDefault) // stretched
//
//	dev := raster.New(320, 240)
//	s.Flush(dev)
//
// # Architecture
//
//   - [Compiler] (package queue): groups operations into [VertexBatch]es,
//     splitting on every render state change.
//   - [Macro]: owns the batches and a private copy of every transform they
//     reference; schedules replay jobs.
//   - [Scheduler] (package sink): runs jobs at flush time, ordered by depth.
//   - [Device] (packages backend/...): where replay jobs draw.
//
// # Ownership
//
// A [RenderState] refers to its transform without owning it. While
// recording, those transforms belong to the recorder's transform stack and
// are recycled as soon as the stack is popped. New copies each referenced
// transform into storage owned by the macro and re-points the state at the
// copy, so the macro never observes later changes to the recorder.
//
// # Unsupported operations
//
// Macros cannot be rotated, tinted, read back as pixels or written to:
// Draw returns [ErrUnsupportedTransform] or [ErrUnsupportedTint],
// ToBitmap returns [ErrNotRasterizable] and Insert returns [ErrNotMutable].
//
// # Coordinate System
//
// Origin at top-left, X grows right, Y grows down.
package macro
