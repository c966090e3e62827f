package txlsh_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/testutil"
)

func ExampleSum() {
	d, err := txlsh.Sum(txlsh.DefaultConfig, []byte(testutil.Lorem))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d)
	// Output: T1DCF0DC36520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2
}

func ExampleBuilder() {
	b := txlsh.NewTxLsh()

	// Chunk boundaries do not affect the digest.
	for _, chunk := range strings.SplitAfter(testutil.Lorem, " ") {
		b.Update([]byte(chunk))
	}

	d, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d.Config())
	fmt.Println(len(d.String()))
	// Output:
	// 256/3/X1
	// 140
}

func ExampleDigest_Distance() {
	a := txlsh.MustParse("T1DCF0DC36520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2")
	b := txlsh.MustParse("T1D3F0DC36520C1B007FD32079B226559FD598A0200725E75BFCE9C99F5881184A4B1AA2")

	fmt.Println(a.Distance(b, true))
	// Output: 4
}
