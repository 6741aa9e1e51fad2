// Command catreedemo builds the fixed five-base topology used throughout
// catree's tests, drives a batch of concurrent inserts across it, and
// prints the result of a range query over the merged tree.
package main

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rogpeppe/catree/catlog"
	"github.com/rogpeppe/catree/catree"
)

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer zl.Sync()

	tree := catree.FromInitialBases[int](catree.DemoTopology(),
		catree.WithLogger(catlog.NewZap(zl).Named("catreedemo")),
		catree.WithHighCont(200),
	)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				tree.Insert(g*1000 + i)
			}
		}(g)
	}
	wg.Wait()

	var found []int
	tree.Query(0, 200, func(k int) bool {
		found = append(found, k)
		return true
	})
	fmt.Printf("keys in [0, 200]: %v\n", found)
}
