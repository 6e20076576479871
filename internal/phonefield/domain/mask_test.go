package domain

import "testing"

func TestMaskApply(t *testing.T) {
	cases := []struct {
		name string
		code string
		dial string
		in   string
		want string
	}{
		{"full kenyan number", "ke", "254", "712345678", "712 345 678"},
		{"trunk zero joins first group", "ke", "254", "0712345678", "0712 345 678"},
		{"partial input has no dangling separator", "ke", "254", "0712", "0712"},
		{"separator appears with next digit", "ke", "254", "07123", "0712 3"},
		{"noise is dropped", "ke", "254", "(071) 2-3", "0712 3"},
		{"overflow digits are appended", "ke", "254", "7123456789012", "712 345 6789012"},
		{"nanp", "us", "1", "2025550123", "202 555 0123"},
		{"france", "fr", "33", "612345678", "6 12 34 56 78"},
		{"grouped fallback", "kz", "7", "7011234567", "701 123 4567"},
		{"empty", "ke", "254", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MaskFor(tc.code, tc.dial).Apply(tc.in).Text
			if got != tc.want {
				t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestGroupedPattern(t *testing.T) {
	cases := map[int]string{
		1:  "X",
		4:  "XXXX",
		5:  "XXX XX",
		7:  "XXX XXXX",
		9:  "XXX XXX XXX",
		10: "XXX XXX XXXX",
	}
	for n, want := range cases {
		if got := groupedPattern(n); got != want {
			t.Errorf("groupedPattern(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestMaskOffsetMapping(t *testing.T) {
	tr := MaskFor("ke", "254").Apply("0712345678")
	if tr.Text != "0712 345 678" {
		t.Fatalf("unexpected text %q", tr.Text)
	}

	// "3" is raw index 4 and sits after the first separator.
	if got := tr.OriginalToTransformed(4); got != 5 {
		t.Fatalf("OriginalToTransformed(4) = %d, want 5", got)
	}
	// The separator maps to the digit that follows it.
	if got := tr.TransformedToOriginal(4); got != 4 {
		t.Fatalf("TransformedToOriginal(4) = %d, want 4", got)
	}
	if got := tr.OriginalToTransformed(10); got != len(tr.Text) {
		t.Fatalf("end offset = %d, want %d", got, len(tr.Text))
	}
	if got := tr.TransformedToOriginal(len(tr.Text)); got != 10 {
		t.Fatalf("end offset back = %d, want 10", got)
	}
	if tr.OriginalToTransformed(-3) != 0 || tr.OriginalToTransformed(99) != len(tr.Text) {
		t.Fatalf("offsets must be clamped")
	}
}

func TestMaskOffsetMappingRoundTripsDigits(t *testing.T) {
	inputs := []string{"0712345678", "(071) 2-3", "202 555 0123", "7123456789012"}
	for _, in := range inputs {
		tr := MaskFor("us", "1").Apply(in)
		raw := []rune(in)
		prev := 0
		for i := 0; i <= len(raw); i++ {
			t2 := tr.OriginalToTransformed(i)
			if t2 < prev {
				t.Fatalf("%q: mapping not monotonic at %d", in, i)
			}
			prev = t2
			if i < len(raw) && isDigit(raw[i]) {
				if back := tr.TransformedToOriginal(t2); back != i {
					t.Fatalf("%q: digit %d maps to %d and back to %d", in, i, t2, back)
				}
			}
		}
		out := []rune(tr.Text)
		prev = 0
		for k := 0; k <= len(out); k++ {
			o := tr.TransformedToOriginal(k)
			if o < prev {
				t.Fatalf("%q: reverse mapping not monotonic at %d", in, k)
			}
			prev = o
		}
	}
}

func TestFormattedLocalNumberUsesRawText(t *testing.T) {
	st := newKenya(t, "0712 34")
	tr := st.FormattedLocalNumber()
	if tr.Text != "0712 34" {
		t.Fatalf("unexpected masked text %q", tr.Text)
	}
	if st.Mask().Pattern() != "XXX XXX XXX" {
		t.Fatalf("unexpected pattern %q", st.Mask().Pattern())
	}
}
