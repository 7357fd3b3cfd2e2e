package domsync

import (
	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"
	"golang.org/x/net/html"
)

// Host is the narrow surface the reconciler drives edits and signals
// through. Implementations own the transaction machinery, the renderer,
// and the view focus state; this package never touches any of them
// directly.
type Host interface {
	// DispatchSplit invokes the editor's paragraph-break command, which
	// carries editor-specific semantics (list splitting and the like)
	// that a raw content replacement would not reproduce.
	DispatchSplit()

	// InsertText applies a text substitution over [from, to) and recovers
	// the selection through the callback once the edit is committed.
	InsertText(from, to int, text string, sel SelectionRecovery)

	// ApplyReplacement commits a generic content replacement of [from, to)
	// with the slice as a single atomic edit.
	ApplyReplacement(from, to int, slice *Slice, sel SelectionRecovery, scroll bool)

	// ResolveSelection derives a model-coordinate selection from the view
	// tree's current focus and caret state, or nil when the view has no
	// focus. hint is the position the edit landed near.
	ResolveSelection(hint int) *Selection

	// MarkDirty flags a model range whose view needs re-rendering.
	MarkDirty(from, to int)

	// MarkAllDirty flags the whole view for re-rendering.
	MarkAllDirty()
}

// Batch is the context of one reconciliation attempt: the document and
// selection as they were when the batch of edits began, the position maps
// of edits applied since, and whether the model was replaced outright. A
// batch is created when event processing begins and discarded when it
// ends; it is never shared across batches.
type Batch struct {
	ID    ulid.ULID
	Doc   *Node
	Sel   Selection
	Reset bool
	Maps  Mapping
}

// NewBatch opens a batch over the given document state.
func NewBatch(doc *Node, sel Selection) *Batch {
	return &Batch{ID: ulid.Make(), Doc: doc, Sel: sel}
}

// AddMap records the position map of an edit applied within the batch.
// Order is significant; maps compose in application order.
func (b *Batch) AddMap(m *StepMap) {
	b.Maps = append(b.Maps, m)
}

// ReconcileAfterInputChange reads the view tree back after an input-change
// event, using the batch-start selection to bound the re-parse. It reports
// whether a model-changing action was dispatched.
func ReconcileAfterInputChange(b *Batch, viewRoot *html.Node, host Host, schema *Schema) bool {
	if b.Reset {
		glog.V(2).Infof("[rec][%s] model reset during batch, requesting full redraw", b.ID)
		host.MarkAllDirty()
		return false
	}
	return reconcile(b, viewRoot, host, schema, estimateRange(b.Doc, b.Sel, schema))
}

// ReconcileAfterComposition reads the view tree back after a composition
// event, bounding the re-parse to a narrow region around the composition
// caret widened by the given symmetric margin (in content-stream units).
func ReconcileAfterComposition(b *Batch, viewRoot *html.Node, host Host, schema *Schema, margin int) bool {
	if b.Reset {
		glog.V(2).Infof("[rec][%s] model reset during batch, requesting full redraw", b.ID)
		host.MarkAllDirty()
		return false
	}
	return reconcile(b, viewRoot, host, schema, estimateCompositionRange(b.Doc, b.Sel, margin, schema))
}

func reconcile(b *Batch, viewRoot *html.Node, host Host, schema *Schema, rng Range) bool {
	region := regionInView(viewRoot, b.Doc, rng.From, rng.To, schema)
	parsed := parseRegion(region.ViewParent, region.StartIndex, region.EndIndex, region.Parent, schema)

	diff := diffFragments(region.Expected, parsed, region.From, b.Sel.Anchor)
	if diff == nil {
		glog.V(2).Infof("[rec][%s] view matches model over [%d,%d], nothing to do", b.ID, region.From, region.To)
		return false
	}
	glog.V(2).Infof("[rec][%s] diff start=%d endA=%d endB=%d over [%d,%d]", b.ID, diff.Start, diff.EndA, diff.EndB, region.From, region.To)

	start := b.Maps.Map(diff.Start, 1)
	end := b.Maps.Map(diff.EndA, -1)
	if start.Deleted && end.Deleted {
		glog.V(2).Infof("[rec][%s] change target deleted by earlier edits, abandoning", b.ID)
		return false
	}
	from, to := start.Pos, end.Pos
	if to < from {
		to = from
	}

	signalDirty(b.Doc, host, diff.Start, diff.EndA)

	wrapper := region.Parent.Copy(parsed)
	localStart := Resolve(wrapper, diff.Start-region.From)
	localEnd := Resolve(wrapper, diff.EndB-region.From)

	change := classifyChange(wrapper, localStart, localEnd, schema, from, to)
	glog.V(2).Infof("[rec][%s] replaying %s over [%d,%d]", b.ID, change.Kind, change.From, change.To)

	recoverSel := func() *Selection {
		return host.ResolveSelection(change.From)
	}
	switch change.Kind {
	case SplitBlock:
		host.DispatchSplit()
	case UniformText:
		host.InsertText(change.From, change.To, change.Text, recoverSel)
	default:
		host.ApplyReplacement(change.From, change.To, change.Slice, recoverSel, true)
	}
	return true
}

// signalDirty marks the sibling range, within the smallest common ancestor
// of the change's bounds in the batch-start model, that must re-render.
// Positions that only meet at the root mark everything dirty.
func signalDirty(doc *Node, host Host, start, endA int) {
	if endA < start {
		endA = start
	}
	rs := Resolve(doc, start)
	re := Resolve(doc, minInt(endA, doc.ContentSize()))
	depth := rs.SharedDepth(re.Pos)
	if depth == 0 {
		host.MarkAllDirty()
		return
	}
	anc := rs.NodeAt(depth)
	from := rs.posBeforeIndex(depth, rs.Index(depth))
	toIdx := re.Index(depth)
	to := rs.posBeforeIndex(depth, toIdx)
	if toIdx < anc.Children.ChildCount() && re.Pos > to {
		to += anc.Children.Child(toIdx).NodeSize()
	}
	host.MarkDirty(from, to)
}
