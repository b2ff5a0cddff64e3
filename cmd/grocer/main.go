// Command grocer, grocery-planner API'sinin terminal client'ı.
//
// Tarif arar, malzemeleri aktif listeye ekler ve listeyi sunucuyla
// senkron tutar. Sunucuya ulaşılamazsa liste yerel fallback store'a yazılır.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
