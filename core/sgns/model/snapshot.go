package model

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/adalundhe/sgns/core/sgnserr"
)

// snapshotMagic and snapshotVersion identify and version the binary
// serialization format. A version bump is required
// any time a field is added, removed, or reordered.
const (
	snapshotMagic   uint32 = 0x53474e53 // "SGNS"
	snapshotVersion uint16 = 2
)

// Snapshot serializes the parts of Model needed to resume training or run
// inference elsewhere: the vocabulary (words in index order, counts,
// total), the embedding tables, and the SGD schedule's step counters. The
// sampler and context strategy are not serialized; the caller reconstructs
// them from configuration, so a restored Empirical sampler starts with a
// fresh step counter and alias table and a restored Reservoir starts empty.
func (m *Model) Snapshot() ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.LittleEndian, snapshotMagic); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, snapshotVersion); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}

	size := m.lm.Size()
	if err := binary.Write(&buf, binary.LittleEndian, uint32(size)); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, m.lm.Total()); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}

	counts := m.lm.Counts()
	for idx := 0; idx < size; idx++ {
		word, err := m.lm.ReverseLookup(idx)
		if err != nil {
			return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
		}
		if err := writeString(&buf, word); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.LittleEndian, counts[idx]); err != nil {
			return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint32(m.fact.GetEmbeddingDim())); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}
	for idx := 0; idx < size; idx++ {
		if err := writeFloat32s(&buf, m.fact.GetWordEmbedding(idx)); err != nil {
			return nil, err
		}
		if err := writeFloat32s(&buf, m.fact.GetContextEmbedding(idx)); err != nil {
			return nil, err
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint32(m.sgdSchedule.Dimension())); err != nil {
		return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
	}
	for d := 0; d < m.sgdSchedule.Dimension(); d++ {
		if err := binary.Write(&buf, binary.LittleEndian, m.sgdSchedule.GetRho(d)); err != nil {
			return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
		}
		if err := binary.Write(&buf, binary.LittleEndian, m.sgdSchedule.GetT(d)); err != nil {
			return nil, sgnserr.Wrap(sgnserr.Deserialize, "Model.Snapshot", err)
		}
	}

	return buf.Bytes(), nil
}

// RestoreInto replays a Snapshot into a freshly constructed Model whose
// language model, factorization, and SGD schedule are already allocated
// with capacities the caller chose: Model.Snapshot never records
// capacity/hyperparameters, only observed state. Words are re-ingested through the
// language model's own Increment so any capacity-bounded model applies its
// own eviction policy identically on reload.
func RestoreInto(m *Model, data []byte) error {
	r := bytes.NewReader(data)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	if magic != snapshotMagic {
		return sgnserr.New(sgnserr.Deserialize, "model.RestoreInto", "bad magic")
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	if version != snapshotVersion {
		return sgnserr.New(sgnserr.Deserialize, "model.RestoreInto", "unsupported snapshot version")
	}

	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	var total uint64
	if err := binary.Read(r, binary.LittleEndian, &total); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	_ = total // re-derived by replaying Increment below; kept in the format for external readers

	type wordCount struct {
		word  string
		count uint64
	}
	entries := make([]wordCount, size)
	for i := range entries {
		word, err := readString(r)
		if err != nil {
			return err
		}
		var count uint64
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
		}
		entries[i] = wordCount{word: word, count: count}
	}
	for _, e := range entries {
		for i := uint64(0); i < e.count; i++ {
			m.lm.Increment(e.word)
		}
	}

	var embeddingDim uint32
	if err := binary.Read(r, binary.LittleEndian, &embeddingDim); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	if int(embeddingDim) != m.fact.GetEmbeddingDim() {
		return sgnserr.New(sgnserr.Deserialize, "model.RestoreInto", "embedding_dim mismatch")
	}
	for i := uint32(0); i < size; i++ {
		idx := m.lm.Lookup(entries[i].word)
		if err := readFloat32sInto(r, m.fact.GetWordEmbedding(idx)); err != nil {
			return err
		}
		if err := readFloat32sInto(r, m.fact.GetContextEmbedding(idx)); err != nil {
			return err
		}
	}

	var dimension uint32
	if err := binary.Read(r, binary.LittleEndian, &dimension); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
	}
	if int(dimension) != m.sgdSchedule.Dimension() {
		return sgnserr.New(sgnserr.Deserialize, "model.RestoreInto", "sgd dimension mismatch")
	}
	for d := uint32(0); d < dimension; d++ {
		var rho float64
		if err := binary.Read(r, binary.LittleEndian, &rho); err != nil {
			return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
		}
		var step uint64
		if err := binary.Read(r, binary.LittleEndian, &step); err != nil {
			return sgnserr.Wrap(sgnserr.Deserialize, "model.RestoreInto", err)
		}
		// rho is redundant with step (SGD.computeRho(step) reproduces it
		// exactly) and is kept in the format only for external readers that
		// want the learning rate without reimplementing the decay formula;
		// RestoreState recomputes it from step rather than trusting the
		// serialized float directly.
		m.sgdSchedule.RestoreState(int(d), step)
	}

	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.writeString", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return sgnserr.Wrap(sgnserr.Deserialize, "model.writeString", err)
	}
	return nil
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", sgnserr.Wrap(sgnserr.Deserialize, "model.readString", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", sgnserr.Wrap(sgnserr.Deserialize, "model.readString", err)
	}
	return string(buf), nil
}

func writeFloat32s(w io.Writer, vs []float32) error {
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return sgnserr.Wrap(sgnserr.Deserialize, "model.writeFloat32s", err)
		}
	}
	return nil
}

func readFloat32sInto(r io.Reader, dst []float32) error {
	for i := range dst {
		if err := binary.Read(r, binary.LittleEndian, &dst[i]); err != nil {
			return sgnserr.Wrap(sgnserr.Deserialize, "model.readFloat32sInto", err)
		}
	}
	return nil
}
