package diskcache_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/unkn0wn-root/diskcache"
)

func ExampleCache_Lookup() {
	dir, _ := os.MkdirTemp("", "diskcache-example")
	defer os.RemoveAll(dir)

	cache, err := diskcache.New[int](diskcache.Options[int]{
		Dir:  dir,
		Salt: "v1",
		TTL:  time.Hour,
	})
	if err != nil {
		panic(err)
	}
	defer cache.Close(context.Background())

	square := func(n int) diskcache.Producer[int] {
		return func(context.Context) (int, error) {
			fmt.Println("computing", n)
			return n * n, nil
		}
	}

	for i := 0; i < 2; i++ {
		v, err := cache.Lookup(context.Background(), "square:12", square(12))
		if err != nil {
			panic(err)
		}
		fmt.Println(v)
	}
	// Output:
	// computing 12
	// 144
	// 144
}

func ExampleCache_GC() {
	dir, _ := os.MkdirTemp("", "diskcache-example")
	defer os.RemoveAll(dir)

	cache, _ := diskcache.New[string](diskcache.Options[string]{Dir: dir, Salt: "v1", GCInterval: -1})
	defer cache.Close(context.Background())

	_, _ = cache.Lookup(context.Background(), "k", func(context.Context) (string, error) { return "v", nil })

	res, err := cache.GC(context.Background(), true)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.FilesRemoved, res.DirsRemoved)
	// Output: 1 1
}
