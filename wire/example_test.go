package wire_test

import (
	"fmt"
	"log"

	"github.com/anirudhraja/pbcodec/wire"
)

func ExampleReader_All() {
	data := []byte{0x08, 0x96, 0x01, 0x12, 0x02, 'h', 'i'}
	for f, err := range wire.NewReader(data).All() {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(f.Number, f.Value)
	}
	// Output:
	// 1 varint(150)
	// 2 bytes[5:7]
}

func ExampleWriter() {
	w := wire.NewWriter(wire.Space)
	w.WriteVarintField(1, 150)
	w.WriteStringField(2, "hi")
	fmt.Printf("% x\n", w.Contents())
	fmt.Println(w.UnusedSpace())
	// Output:
	// 08 96 01 12 02 68 69
	// 0
}
