package labels

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/danieldk/morphotag/errs"
)

// Boundary is the reserved id of the sentence-boundary label.
const Boundary = 0

// BoundaryForm is the word form used to pad sentences.
const BoundaryForm = "_#_"

// subLabelPrefix marks an interned piece of a compound label.
const subLabelPrefix = "SL:"

// Registry interns label strings to small integer ids and records the
// sub-label decomposition of compound labels (pieces of a `A|B|C`
// label, joined by `|`).
type Registry struct {
	ids         map[string]int
	strs        []string
	subLabels   map[int][]int
	oovWords    map[string]struct{}
	openClasses map[int]struct{}
	trained     bool
}

// NewRegistry constructs an empty Registry. The boundary label is
// pre-interned at id 0.
func NewRegistry() *Registry {
	r := &Registry{
		ids:         make(map[string]int),
		subLabels:   make(map[int][]int),
		oovWords:    make(map[string]struct{}),
		openClasses: make(map[int]struct{}),
	}
	r.Intern(BoundaryForm)
	return r
}

// Intern returns the id for label, assigning a fresh one on first
// sight. If label contains `|`, each `|`-separated piece is interned
// as its own label with the `SL:` prefix and recorded as a sub-label
// of the compound.
func (r *Registry) Intern(label string) int {
	if id, ok := r.ids[label]; ok {
		return id
	}

	id := len(r.strs)
	r.ids[label] = id
	r.strs = append(r.strs, label)

	if strings.Contains(label, "|") {
		pieces := strings.Split(label, "|")
		subs := make([]int, 0, len(pieces))
		for _, p := range pieces {
			subs = append(subs, r.Intern(subLabelPrefix+p))
		}
		r.subLabels[id] = subs
	}

	return id
}

// Lookup returns the id for label without interning it.
func (r *Registry) Lookup(label string) (int, bool) {
	id, ok := r.ids[label]
	return id, ok
}

// SubLabels returns the sub-label ids of id, or nil if id is not a
// compound label.
func (r *Registry) SubLabels(id int) []int {
	return r.subLabels[id]
}

// BoundaryLabel returns the reserved boundary label id.
func (r *Registry) BoundaryLabel() int {
	return Boundary
}

// LabelCount returns the number of interned labels, including
// sub-labels and the boundary label.
func (r *Registry) LabelCount() int {
	return len(r.strs)
}

// String returns the label string for id.
func (r *Registry) String(id int) (string, error) {
	if id < 0 || id >= len(r.strs) {
		return "", fmt.Errorf("label id %d: %w", id, errs.ErrIllegalLabel)
	}
	return r.strs[id], nil
}

// MarkOOV records that wf was judged out-of-vocabulary at training
// time (see the label guesser's held-out partition).
func (r *Registry) MarkOOV(wf string) {
	r.oovWords[wf] = struct{}{}
}

// IsOOV reports whether wf was judged out-of-vocabulary at training
// time.
func (r *Registry) IsOOV(wf string) bool {
	_, ok := r.oovWords[wf]
	return ok
}

// MarkOpenClass records that id was observed on an OOV training word.
func (r *Registry) MarkOpenClass(id int) {
	r.openClasses[id] = struct{}{}
}

// OpenClass reports whether id was ever observed on an OOV training
// word.
func (r *Registry) OpenClass(id int) bool {
	_, ok := r.openClasses[id]
	return ok
}

// SetTrained freezes the registry: no further labels should be
// interned afterward.
func (r *Registry) SetTrained() {
	r.trained = true
}

// Trained reports whether SetTrained was called.
func (r *Registry) Trained() bool {
	return r.trained
}

type encodedRegistry struct {
	IDs         map[string]int
	Strs        []string
	SubLabels   map[int][]int
	OOVWords    map[string]struct{}
	OpenClasses map[int]struct{}
	Trained     bool
}

// GobEncode implements gob.GobEncoder.
func (r *Registry) GobEncode() ([]byte, error) {
	e := encodedRegistry{
		IDs:         r.ids,
		Strs:        r.strs,
		SubLabels:   r.subLabels,
		OOVWords:    r.oovWords,
		OpenClasses: r.openClasses,
		Trained:     r.trained,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (r *Registry) GobDecode(data []byte) error {
	var e encodedRegistry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return err
	}

	r.ids = e.IDs
	r.strs = e.Strs
	r.subLabels = e.SubLabels
	r.oovWords = e.OOVWords
	r.openClasses = e.OpenClasses
	r.trained = e.Trained

	return nil
}
