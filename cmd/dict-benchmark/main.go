package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/pengdafu/redis-dict/dict"
	"github.com/pengdafu/redis-dict/util"
)

type options struct {
	count      int64
	hash       string
	configFile string
	rehashMs   int
	seed       uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "dict-benchmark",
		Short: "exercise the dict with the classic insert/lookup/delete workload",
		Long: `dict-benchmark inserts count string keys into a dict, then measures linear
and random lookups, lookups of missing keys and delete/re-add cycles, and
prints the table statistics at the end.
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&opts.count, "count", 5000, "number of keys")
	f.StringVar(&opts.hash, "hash", "siphash", "hash function: siphash or xxhash")
	f.StringVar(&opts.configFile, "config", "", "YAML file with dict settings")
	f.IntVar(&opts.rehashMs, "rehash-ms", 100, "time slice of each rehash round after inserting")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one")
	return cmd
}

func loadConfig(path string) (*dict.Config, error) {
	if path == "" {
		return dict.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dict.ParseConfig(data)
}

func newDict(opts *options, cfg *dict.Config) (*dict.Dict[string, int64], error) {
	typ := dict.TypeHeapStringCopyKey[int64]()
	switch opts.hash {
	case "siphash":
	case "xxhash":
		typ.HashFunction = func(key string) uint64 {
			return dict.GenFastHashFunction(util.String2Bytes(key))
		}
	default:
		return nil, fmt.Errorf("unknown hash function %q", opts.hash)
	}
	return dict.CreateWithConfig(typ, nil, cfg), nil
}

func benchmark(name string, count int64, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Printf("%s: %d items in %d ms", name, count, time.Since(start).Milliseconds())
	return nil
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.count <= 0 {
		return fmt.Errorf("count must be positive, got %d", opts.count)
	}
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.RandSeed = opts.seed
	}
	dict.SetHashFunctionSeed(util.GetRandomBytes(16))

	d, err := newDict(opts, cfg)
	if err != nil {
		return err
	}
	defer d.Release()

	rnd := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	if err := workload(d, opts.count, opts.rehashMs, rnd); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), d.GetStats())
	return nil
}

// workload runs the benchmark sequence on d, which must be empty.
func workload(d *dict.Dict[string, int64], count int64, rehashMs int, rnd *rand.Rand) error {
	err := benchmark("Inserting", count, func() error {
		for j := int64(0); j < count; j++ {
			if err := d.Add(strconv.FormatInt(j, 10), j); err != nil {
				return fmt.Errorf("add %d: %w", j, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if d.Size() != count {
		return fmt.Errorf("size %d after inserting %d keys", d.Size(), count)
	}

	rounds := 0
	for d.IsRehashing() {
		d.RehashMilliseconds(rehashMs)
		rounds++
	}
	log.Printf("rehash finished after %d rounds", rounds)

	for _, name := range []string{"Linear access of existing elements", "Linear access of existing elements (2nd round)"} {
		err := benchmark(name, count, func() error {
			for j := int64(0); j < count; j++ {
				if d.Find(strconv.FormatInt(j, 10)) == nil {
					return fmt.Errorf("key %d not found", j)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	err = benchmark("Random access of existing elements", count, func() error {
		for j := int64(0); j < count; j++ {
			key := strconv.FormatInt(rnd.Int63n(count), 10)
			if d.Find(key) == nil {
				return fmt.Errorf("key %s not found", key)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = benchmark("Accessing missing", count, func() error {
		for j := int64(0); j < count; j++ {
			key := "THERE IS NO " + strconv.FormatInt(rnd.Int63(), 10)
			if d.Find(key) != nil {
				return fmt.Errorf("found missing key %s", key)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return benchmark("Removing and adding", count, func() error {
		for j := int64(0); j < count; j++ {
			key := strconv.FormatInt(j, 10)
			if err := d.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
			// change the first byte so the key lands in another bucket
			key = string(key[0]+17) + key[1:]
			if err := d.Add(key, j); err != nil {
				return fmt.Errorf("add %s: %w", key, err)
			}
		}
		return nil
	})
}
