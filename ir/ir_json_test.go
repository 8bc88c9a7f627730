package ir

import (
	"math"
	"strings"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	huge, err := FromBigInt(maxInt128)
	if err != nil {
		t.Fatal(err)
	}
	doc := FromKeyVals([]KeyVal{
		{Key: "z", Val: FromString("")},
		{Key: "a", Val: FromSlice([]*Node{FromBool(false), FromInt(-5), huge})},
		{Key: "nan", Val: FromReal(math.NaN())},
		{Key: "inf", Val: FromReal(math.Inf(-1))},
		{Key: "when", Val: FromDate(12.25)},
		{Key: "blob", Val: FromData([]byte{0, 255})},
		{Key: "empty", Val: FromData(nil)},
		{Key: "ref", Val: FromUID(42)},
		{Key: "nothing", Val: NewArray()},
	})
	d, err := ToJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	if !Equal(doc, back) {
		t.Fatalf("round trip mismatch:\n%s", d)
	}
	if strings.Join(back.Keys(), ",") != "z,a,nan,inf,when,blob,empty,ref,nothing" {
		t.Errorf("key order lost: %v", back.Keys())
	}
}

func TestJSONRejectsBadInput(t *testing.T) {
	for _, in := range []string{
		`{"type":"Integer","int":"1x"}`,
		`{"type":"Real","float":"abc"}`,
		`{"type":"Dict","fields":[{"type":"String","string":"a"}],"values":[]}`,
		`{"type":"Dict","fields":[{"type":"Integer","int":"1"}],"values":[{"type":"Bool"}]}`,
		`{"type":"Nope"}`,
	} {
		if _, err := FromJSON([]byte(in)); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}
