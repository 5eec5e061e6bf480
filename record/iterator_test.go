package record

import (
	"errors"
	"testing"

	"github.com/wilhasse/go-ibdparse/format"
)

// chainPage links records at the given origins after infimum, in order.
func chainPage(origins ...int) []byte {
	p := make([]byte, format.PageSize)
	prev := format.InfimumOffset
	for _, o := range origins {
		NewRecordHeader(prev, 0, 0, o).Encode(p)
		prev = o
	}
	NewRecordHeader(prev, 0, 0, format.SupremumOffset).Encode(p)
	NewRecordHeader(format.SupremumOffset, 1, 3, format.SupremumOffset).Encode(p)
	return p
}

var sentinelDir = []uint16{format.InfimumOffset, format.SupremumOffset}

func TestWalkChainEmpty(t *testing.T) {
	p := chainPage()
	n, err := WalkChain(p, sentinelDir, DefaultLimit(0), func(RecordHeader) error {
		t.Fatal("visited a record on an empty page")
		return nil
	})
	if err != nil || n != 0 {
		t.Fatalf("WalkChain = %d, %v", n, err)
	}
}

func TestWalkChainOrder(t *testing.T) {
	// chain order differs from address order
	p := chainPage(300, 150, 600)
	hs, err := Headers(p, sentinelDir, DefaultLimit(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 3 || hs[0].Offset != 300 || hs[1].Offset != 150 || hs[2].Offset != 600 {
		t.Fatalf("headers %+v", hs)
	}
}

func TestWalkChainNonTerminating(t *testing.T) {
	p := chainPage(200, 300)
	NewRecordHeader(300, 0, 0, 200).Encode(p) // 300 -> 200 -> 300 ...
	n, err := WalkChain(p, sentinelDir, DefaultLimit(2), func(RecordHeader) error { return nil })
	var nt *format.NonTerminatingChainError
	if !errors.As(err, &nt) {
		t.Fatalf("cycle: %v", err)
	}
	if n != DefaultLimit(2) || nt.Limit != DefaultLimit(2) {
		t.Fatalf("visited %d, error %+v", n, nt)
	}
}

func TestWalkChainOutOfPage(t *testing.T) {
	p := chainPage(200)
	NewRecordHeader(200, 0, 0, 2).Encode(p)
	hs, err := Headers(p, sentinelDir, 10)
	if !errors.Is(err, format.ErrShortRead) {
		t.Fatalf("pointer into header: %v", err)
	}
	if len(hs) != 1 {
		t.Fatalf("records before failure: %d", len(hs))
	}
}

func TestWalkChainDirectoryTooSmall(t *testing.T) {
	if _, err := WalkChain(chainPage(), sentinelDir[:1], 10, nil); !errors.Is(err, format.ErrDirectoryTooSmall) {
		t.Fatalf("one slot: %v", err)
	}
}

func TestWalkChainVisitError(t *testing.T) {
	stop := errors.New("stop")
	n, err := WalkChain(chainPage(200, 300), sentinelDir, 10, func(RecordHeader) error { return stop })
	if err != stop || n != 0 {
		t.Fatalf("WalkChain = %d, %v", n, err)
	}
}
