package hash

import (
	"bytes"
	"sync"
	"testing"
)

var oaatVectors = []struct {
	key  string
	hash uint32
}{
	{"", 0x00000000},
	{"a", 0xca2e9442},
	{"metal_01", 0x9a51fbcf},
	{"somefilename", 0xe9eb0404},
	{"SOMEFILENAME", 0x093f3637},
	{"Diffuse", 0xcdc75f30},
	{"BaseDiffuse", 0xb2c4211e},
	{"CharacterVehicle", 0x9ee67797},
	{"Vehicle_Rigid", 0x0f70c376},
	{"The quick brown fox jumps over the lazy dog", 0x7647f758},
}

func TestOAAT(t *testing.T) {
	for _, v := range oaatVectors {
		if h := OAAT([]byte(v.key)); h != v.hash {
			t.Fatalf("OAAT(%q) = 0x%08x, want 0x%08x", v.key, h, v.hash)
		}
		if h := OAATString(v.key); h != v.hash {
			t.Fatalf("OAATString(%q) = 0x%08x, want 0x%08x", v.key, h, v.hash)
		}
	}
}

func TestOAATEmpty(t *testing.T) {
	// Finalization of a zero accumulator stays zero.
	if h := OAAT(nil); h != 0 {
		t.Fatalf("OAAT(nil) = 0x%08x", h)
	}
	if h := OAAT([]byte{}); h != OAAT(nil) {
		t.Fatalf("OAAT(empty) = 0x%08x, OAAT(nil) = 0x%08x", h, OAAT(nil))
	}
}

func TestOAATSignedBytes(t *testing.T) {
	tests := []struct {
		key      []byte
		hash     uint32
		unsigned uint32
	}{
		// 0x80 is added as -128.
		{[]byte{0x80}, 0x2725ce27, 0x277fcedb},
		{[]byte{0xff}, 0x124a2494, 0},
		// "é" encodes to 0xc3 0xa9.
		{[]byte("é"), 0xf5aca6ae, 0xae8600ef},
		{[]byte("métal_01"), 0xbc33401d, 0},
		{[]byte("café"), 0x1fb0e746, 0},
	}
	for _, tt := range tests {
		h := OAAT(tt.key)
		if h != tt.hash {
			t.Fatalf("OAAT(% x) = 0x%08x, want 0x%08x", tt.key, h, tt.hash)
		}
		if tt.unsigned != 0 && h == tt.unsigned {
			t.Fatalf("OAAT(% x) treated high bytes as unsigned", tt.key)
		}
	}
}

func TestOAATByteWiseSign(t *testing.T) {
	// Hand computation for the single byte 0x80, with the accumulator
	// held as int32 all the way through.
	h := int32(-128)
	h += h << 10
	h ^= h >> 6
	h += h << 3
	h ^= h >> 11
	h += h << 15
	if want := uint32(h); OAAT([]byte{0x80}) != want {
		t.Fatalf("OAAT(0x80) = 0x%08x, want 0x%08x", OAAT([]byte{0x80}), want)
	}
}

var lookup2Vectors = []struct {
	key    string
	seed   uint32
	hash   uint32
	legacy uint32
}{
	{"", 0, 0xbd49d10d, 0xbd49d10d},
	{"", 1, 0x6ddfb8c9, 0x6ddfb8c9},
	{"a", 0, 0x29eec818, 0x29eec818},
	{"a", 1, 0x75f1faad, 0x75f1faad},
	{"metal_01", 0, 0x6d3ba793, 0x6d3ba793},
	{"metal_01", 1, 0xca6a0f63, 0xca6a0f63},
	{"Diffuse", 0, 0x56404fdb, 0x56404fdb},
	{"BaseDiffuse", 0, 0x698c0776, 0x698c0776},
	{"Vehicle_Rigid", 0, 0xbea8bb97, 0x1869ee0d},
	{"CharacterVehicle", 0, 0x56135203, 0xba7b7572},
	{"CharacterVehicle", 1, 0x7b093088, 0},
	{"The quick brown fox jumps over the lazy dog", 0, 0xfc1558de, 0x71ff6098},
	{"The quick brown fox jumps over the lazy dog", 1, 0xb70054e4, 0},
}

func TestLookup2(t *testing.T) {
	for _, v := range lookup2Vectors {
		if h := Lookup2WithSeed([]byte(v.key), v.seed); h != v.hash {
			t.Fatalf("Lookup2WithSeed(%q, %d) = 0x%08x, want 0x%08x", v.key, v.seed, h, v.hash)
		}
		if v.seed == 0 {
			if h := Lookup2([]byte(v.key)); h != v.hash {
				t.Fatalf("Lookup2(%q) = 0x%08x, want 0x%08x", v.key, h, v.hash)
			}
		}
		if v.legacy == 0 {
			continue
		}
		if h := Lookup2Legacy([]byte(v.key), v.seed); h != v.legacy {
			t.Fatalf("Lookup2Legacy(%q, %d) = 0x%08x, want 0x%08x", v.key, v.seed, h, v.legacy)
		}
	}
}

func TestLookup2Seed(t *testing.T) {
	for _, key := range []string{"a", "metal_01", "CharacterVehicle", "The quick brown fox jumps over the lazy dog"} {
		if Lookup2WithSeed([]byte(key), 0) == Lookup2WithSeed([]byte(key), 1) {
			t.Fatalf("seed has no effect on %q", key)
		}
	}
}

func TestLookup2Length(t *testing.T) {
	// Same tail bytes, different total length.
	a := Lookup2(bytes.Repeat([]byte{0}, 3))
	b := Lookup2(bytes.Repeat([]byte{0}, 4))
	if a == b {
		t.Fatalf("length not folded: 0x%08x", a)
	}
}

func TestLookup2LegacyShortKeys(t *testing.T) {
	key := []byte("abcdefghijklmnop")
	for n := 0; n < BlockSize; n++ {
		if Lookup2Legacy(key[:n], 7) != Lookup2WithSeed(key[:n], 7) {
			t.Fatalf("legacy grouping differs for %d byte key", n)
		}
	}
	if foldLegacyWord([]byte{0xff, 0xff, 0xff, 0xff}) != 0 {
		t.Fatal("legacy block word not zero")
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		in, out [3]uint32
	}{
		{[3]uint32{0, 0, 0}, [3]uint32{0, 0, 0}},
		{[3]uint32{1, 2, 3}, [3]uint32{0x072c6345, 0x41729d0b, 0xb7b48902}},
		{[3]uint32{golden, golden, 0}, [3]uint32{0x9b2ec03d, 0xdb2b69ae, 0xbd49d10d}},
	}
	for _, tt := range tests {
		a, b, c := Mix(tt.in[0], tt.in[1], tt.in[2])
		if [3]uint32{a, b, c} != tt.out {
			t.Fatalf("Mix(%#x) = %#x, want %#x", tt.in, [3]uint32{a, b, c}, tt.out)
		}
		a2, b2, c2 := Mix(tt.in[0], tt.in[1], tt.in[2])
		if a != a2 || b != b2 || c != c2 {
			t.Fatalf("Mix(%#x) not deterministic", tt.in)
		}
	}
}

func TestDigest(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog; 0123456789 \xc3\xa9\xff")
	for _, chunk := range []int{1, 2, 5, 11, 12, 13, 24, len(data)} {
		o, l, ll := NewOAAT(), NewLookup2(3), NewLookup2Legacy(3)
		for p := data; len(p) > 0; {
			n := chunk
			if n > len(p) {
				n = len(p)
			}
			o.Write(p[:n])
			l.Write(p[:n])
			ll.Write(p[:n])
			p = p[n:]
		}
		if o.Sum32() != OAAT(data) {
			t.Fatalf("chunk %d: OAAT digest 0x%08x, want 0x%08x", chunk, o.Sum32(), OAAT(data))
		}
		if l.Sum32() != Lookup2WithSeed(data, 3) {
			t.Fatalf("chunk %d: Lookup2 digest 0x%08x, want 0x%08x", chunk, l.Sum32(), Lookup2WithSeed(data, 3))
		}
		if ll.Sum32() != Lookup2Legacy(data, 3) {
			t.Fatalf("chunk %d: legacy digest 0x%08x, want 0x%08x", chunk, ll.Sum32(), Lookup2Legacy(data, 3))
		}
	}
}

func TestDigestReset(t *testing.T) {
	d := NewLookup2(1)
	d.Write([]byte("CharacterVehicle"))
	d.Reset()
	d.Write([]byte("a"))
	if h := d.Sum32(); h != 0x75f1faad {
		t.Fatalf("Sum32 after Reset = 0x%08x", h)
	}
	sum := d.Sum([]byte{0xaa})
	if !bytes.Equal(sum, []byte{0xaa, 0x75, 0xf1, 0xfa, 0xad}) {
		t.Fatalf("Sum = % x", sum)
	}

	o := NewOAAT()
	o.Write([]byte("metal"))
	o.Reset()
	o.Write([]byte("metal_01"))
	if h := o.Sum32(); h != 0x9a51fbcf {
		t.Fatalf("OAAT Sum32 after Reset = 0x%08x", h)
	}
}

func TestConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, v := range oaatVectors {
				if OAATString(v.key) != v.hash {
					t.Errorf("OAAT(%q) changed under concurrency", v.key)
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkOAAT(b *testing.B) {
	key := []byte("Vehicle_Rigid_Layout")
	b.SetBytes(int64(len(key)))
	for i := 0; i < b.N; i++ {
		OAAT(key)
	}
}

func BenchmarkLookup2(b *testing.B) {
	key := []byte("Vehicle_Rigid_Layout")
	b.SetBytes(int64(len(key)))
	for i := 0; i < b.N; i++ {
		Lookup2(key)
	}
}
