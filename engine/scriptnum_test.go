package engine

import (
	"math/big"
	"testing"
)

func TestItemToIntIntToItemRoundTrip(t *testing.T) {
	t.Parallel()

	values := []int64{0, 1, -1, 127, 128, -128, 255, 256, -256, 32767, 32768, 1 << 40, -(1 << 40)}
	for _, v := range values {
		item := IntToItem(big.NewInt(v))
		got := ItemToInt(item)
		if got.Int64() != v {
			t.Errorf("IntToItem(%d) -> ItemToInt = %d, want %d (item=%x)", v, got.Int64(), v, item)
		}
	}
}

func TestItemToIntExplicit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item []byte
		want int64
	}{
		{nil, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x81}, -1},
		{[]byte{0xff, 0x00}, 255},
		{[]byte{0xff, 0x80}, -255},
	}
	for _, c := range cases {
		got := ItemToInt(c.item)
		if got.Int64() != c.want {
			t.Errorf("ItemToInt(%x) = %d, want %d", c.item, got.Int64(), c.want)
		}
	}
}

func TestIsMinimallyEncoded(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item []byte
		want bool
	}{
		{nil, true},
		{[]byte{0x01}, true},
		{[]byte{0x00}, false},
		{[]byte{0x00, 0x00}, false},
		{[]byte{0xff, 0x00}, true},
		{[]byte{0x80, 0x00}, true},
	}
	for _, c := range cases {
		if got := IsMinimallyEncoded(c.item); got != c.want {
			t.Errorf("IsMinimallyEncoded(%x) = %v, want %v", c.item, got, c.want)
		}
	}
}

func TestMinimalEncoding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item []byte
		want []byte
	}{
		{nil, nil},
		{[]byte{0x00}, nil},
		{[]byte{0x00, 0x00}, nil},
		{[]byte{0xff, 0x00}, []byte{0xff, 0x00}},
		{[]byte{0x01, 0x00}, []byte{0x01}},
		{[]byte{0x80}, nil},
		{[]byte{0x01, 0x80}, []byte{0x81}},
	}
	for _, c := range cases {
		got := MinimalEncoding(c.item)
		if !bytesEqual(got, c.want) {
			t.Errorf("MinimalEncoding(%x) = %x, want %x", c.item, got, c.want)
		}
	}
}

func TestCastToBool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item []byte
		want bool
	}{
		{nil, false},
		{[]byte{0x00}, false},
		{[]byte{0x80}, false},
		{[]byte{0x00, 0x80}, false},
		{[]byte{0x01}, true},
		{[]byte{0x00, 0x01}, true},
	}
	for _, c := range cases {
		if got := CastToBool(c.item); got != c.want {
			t.Errorf("CastToBool(%x) = %v, want %v", c.item, got, c.want)
		}
	}
}

func TestIntToItemSize(t *testing.T) {
	t.Parallel()

	item, ok := IntToItemSize(big.NewInt(5), 4)
	if !ok {
		t.Fatal("expected 5 to fit in 4 bytes")
	}
	if ItemToInt(item).Int64() != 5 {
		t.Errorf("got %d, want 5", ItemToInt(item).Int64())
	}

	_, ok = IntToItemSize(big.NewInt(1<<40), 2)
	if ok {
		t.Error("expected overflow to be rejected")
	}

	// A magnitude whose top byte already has its high bit set needs an
	// extra byte to carry the sign; requesting the bare magnitude size
	// must fail rather than silently clobbering the sign bit.
	if _, ok := IntToItemSize(big.NewInt(128), 1); ok {
		t.Error("expected NUM2BIN(128, 1) to be rejected as impossible")
	}
	if _, ok := IntToItemSize(big.NewInt(-128), 1); ok {
		t.Error("expected NUM2BIN(-128, 1) to be rejected as impossible")
	}
	if _, ok := IntToItemSize(big.NewInt(255), 1); ok {
		t.Error("expected NUM2BIN(255, 1) to be rejected as impossible")
	}
	if _, ok := IntToItemSize(big.NewInt(32768), 2); ok {
		t.Error("expected NUM2BIN(32768, 2) to be rejected as impossible")
	}

	item, ok = IntToItemSize(big.NewInt(128), 2)
	if !ok {
		t.Fatal("expected 128 to fit in 2 bytes with a dedicated sign byte")
	}
	if ItemToInt(item).Int64() != 128 {
		t.Errorf("got %d, want 128", ItemToInt(item).Int64())
	}
}

func TestMinimalPushOpcode(t *testing.T) {
	t.Parallel()

	if op := MinimalPushOpcode(nil); op != OP_0 {
		t.Errorf("got %s, want OP_0", op)
	}
	if op := MinimalPushOpcode([]byte{5}); op != OP_5 {
		t.Errorf("got %s, want OP_5", op)
	}
	if op := MinimalPushOpcode([]byte{0x81}); op != OP_1NEGATE {
		t.Errorf("got %s, want OP_1NEGATE", op)
	}
	if op := MinimalPushOpcode(make([]byte, 100)); op != OP_PUSHDATA1 {
		t.Errorf("got %s, want OP_PUSHDATA1 for a 100-byte item", op)
	}
}
