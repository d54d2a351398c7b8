package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"careerfair.ai/internal/sim/world"
)

func TestInteractionLog_WritesDecodableJSONL(t *testing.T) {
	dir := t.TempDir()
	l := NewInteractionLogger(dir)

	want := []world.InteractionEntry{
		{Tick: 5, ConversationID: "C000001", StudentID: 1, RecruiterID: 2, Score: 77.7, Offer: true, Messages: 6, Quality: 0.9},
		{Tick: 9, ConversationID: "C000002", StudentID: 3, RecruiterID: 2, Score: 41.2, Messages: 2, Quality: 0.3},
	}
	for _, e := range want {
		if err := l.WriteInteraction(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "interactions-*.jsonl.zst"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("log files = %v (err %v), want exactly one", matches, err)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	var got []world.InteractionEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e world.InteractionEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal %q: %v", sc.Text(), err)
		}
		got = append(got, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJSONLZstdWriter_CloseWithoutWrites(t *testing.T) {
	w := NewJSONLZstdWriter(t.TempDir(), "interactions")
	if err := w.Close(); err != nil {
		t.Fatalf("close idle writer: %v", err)
	}
}
