// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/emer/emergent/timer"
	"github.com/emer/empi/mpi"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/thalcort/config"
	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/store"
	"github.com/spf13/cobra"
)

// seedStride separates the seeds of sweep jobs: each run uses the
// cortex, thalamus and stimulation seeds base, base+1 and base+2
const seedStride = 3

// job is one run of a sweep
type job struct {
	Idx  int
	Val  float64
	Seed uint64
}

// sweepCols are the per-job results, gathered over all ranks by float
// summation.  The seed is not among them: float64 cannot hold every uint64
// seed, so the table takes it from the job list.
var sweepCols = []string{"Val", "VpMean", "VpStd", "VtMean", "CaMean", "ActHMean", "NStim", "Secs"}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a simulation for each value of one parameter",
		Long: `Run one simulation per value (and repetition) of a named parameter.
Runs are spread over the MPI ranks (with --mpi) and over goroutines within
a rank.  Every run gets its own noise seeds.  The results table is printed
by rank 0.

Examples:
  tcsim sweep --param thalamus.g_h --values 0.04,0.051,0.062 --reps 4
  mpirun -np 4 tcsim sweep --mpi --param cortex.g_KNa --values 1,1.33,2 --db sweep.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			param, _ := fs.GetString("param")
			vals, _ := fs.GetFloat64Slice("values")
			if len(vals) == 0 {
				return fmt.Errorf("--values: no values given")
			}
			reps, _ := fs.GetInt("reps")
			threads, _ := fs.GetInt("threads")
			useMPI, _ := fs.GetBool("mpi")
			dbPath, _ := fs.GetString("db")
			lg := logging.NewLogger(cf.Log, cmd.ErrOrStderr())

			// fail before starting any rank if the parameter is unknown
			tst := cf.Clone()
			tst.Set = map[string]float64{param: vals[0]}
			if _, err := tst.Params(); err != nil {
				return err
			}

			rank, size := 0, 1
			var comm *mpi.Comm
			if useMPI {
				mpi.Init()
				defer mpi.Finalize()
				comm, err = mpi.NewComm(nil) // use all procs
				if err != nil {
					return err
				}
				rank, size = mpi.WorldRank(), mpi.WorldSize()
				mpi.Printf("MPI running on %d procs\n", size)
			}
			if dbPath != "" && size > 1 {
				dbPath = fmt.Sprintf("%s.%d", dbPath, rank)
			}

			jobs := makeJobs(vals, reps, cf.Sim.Seed)
			res, err := runSweep(cmd.Context(), cf, param, rankJobs(jobs, rank, size), len(jobs), threads, dbPath, lg)
			if err != nil {
				return err
			}
			if comm != nil {
				all := make([]float64, len(res))
				if err := comm.AllReduceF64(mpi.OpSum, all, res); err != nil {
					return err
				}
				res = all
			}
			if rank == 0 {
				return sweepTable(param, jobs, res).WriteCSV(cmd.OutOrStdout(), etable.Tab, etable.Headers)
			}
			return nil
		},
	}
	cmd.Flags().String("param", "", "named parameter to sweep, see tcsim params --names")
	cmd.Flags().Float64Slice("values", nil, "comma separated parameter values")
	cmd.Flags().Int("reps", 1, "runs per value, each with new seeds")
	cmd.Flags().Int("threads", runtime.NumCPU(), "concurrent runs per rank")
	cmd.Flags().Bool("mpi", false, "spread the runs over MPI ranks")
	cmd.Flags().String("db", "", "SQLite database for the runs (one per rank under MPI)")
	cmd.MarkFlagRequired("param")
	cmd.MarkFlagRequired("values")
	return cmd
}

// makeJobs returns reps jobs per value, value-major, with distinct seeds
func makeJobs(vals []float64, reps int, seed uint64) []job {
	if reps < 1 {
		reps = 1
	}
	jobs := make([]job, 0, len(vals)*reps)
	for _, v := range vals {
		for r := 0; r < reps; r++ {
			i := len(jobs)
			jobs = append(jobs, job{Idx: i, Val: v, Seed: seed + seedStride*uint64(i)})
		}
	}
	return jobs
}

// rankJobs returns the jobs of rank out of size, round robin
func rankJobs(jobs []job, rank, size int) []job {
	var mine []job
	for i := rank; i < len(jobs); i += size {
		mine = append(mine, jobs[i])
	}
	return mine
}

// runSweep runs the jobs with up to threads concurrent runs.  The result
// has len(sweepCols) values per job of all n jobs, zero for the jobs of
// other ranks, so that ranks can be combined by summation.
func runSweep(ctx context.Context, cf *config.Config, param string, jobs []job, n, threads int, dbPath string, lg *slog.Logger) ([]float64, error) {
	lg = logging.OrDiscard(lg)
	nc := len(sweepCols)
	res := make([]float64, n*nc)
	var st *store.Store
	if dbPath != "" && len(jobs) > 0 {
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer st.Close()
	}
	if threads < 1 {
		threads = 1
	}

	ch := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for th := 0; th < threads; th++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range ch {
				vals, err := runJob(ctx, cf, param, jb, st, lg)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					copy(res[jb.Idx*nc:], vals)
				}
				mu.Unlock()
			}
		}()
	}
	for _, jb := range jobs {
		mu.Lock()
		stop := firstErr != nil
		mu.Unlock()
		if stop || ctx.Err() != nil {
			break
		}
		ch <- jb
	}
	close(ch)
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// runJob runs one job and returns its row of sweepCols
func runJob(ctx context.Context, base *config.Config, param string, jb job, st *store.Store, lg *slog.Logger) ([]float64, error) {
	cf := base.Clone()
	if cf.Set == nil {
		cf.Set = map[string]float64{}
	}
	cf.Set[param] = jb.Val
	cf.Sim.Seed = jb.Seed
	cf.Name = fmt.Sprintf("%s_%s=%g_%d", base.Name, param, jb.Val, jb.Idx)
	s, err := cf.Build(lg.With("job", jb.Idx))
	if err != nil {
		return nil, err
	}
	var tmr timer.Time
	tmr.Start()
	err = s.Run(ctx)
	tmr.Stop()
	if err != nil {
		return nil, err
	}
	if st != nil {
		if err := st.SaveRun(ctx, storeRun(s, tmr.TotalSecs()), s.Rec); err != nil {
			return nil, err
		}
	}
	means := map[string]float64{}
	vpStd := 0.0
	for _, cs := range s.Rec.Summary() {
		means[cs.Name] = cs.Mean
		if cs.Name == "Vp" {
			vpStd = cs.Std
		}
	}
	return []float64{jb.Val, means["Vp"], vpStd, means["Vt"], means["Ca"], means["ActH"],
		float64(len(s.Stim.Markers)), tmr.TotalSecs()}, nil
}

// sweepTable returns the gathered results as a table, one row per job,
// with the exact job seed in the Seed column after Val
func sweepTable(param string, jobs []job, res []float64) *etable.Table {
	n := len(jobs)
	dt := &etable.Table{}
	dt.SetMetaData("name", "Sweep")
	dt.SetMetaData("desc", "sweep over "+param)
	sch := etable.Schema{{Name: sweepCols[0], Type: etensor.FLOAT64}, {Name: "Seed", Type: etensor.UINT64}}
	for _, cn := range sweepCols[1:] {
		sch = append(sch, etable.Column{Name: cn, Type: etensor.FLOAT64})
	}
	dt.SetFromSchema(sch, n)
	seeds := dt.ColByName("Seed").(*etensor.Uint64).Values
	for r, jb := range jobs {
		seeds[r] = jb.Seed
	}
	nc := len(sweepCols)
	for ci, cn := range sweepCols {
		vals := dt.ColByName(cn).(*etensor.Float64).Values
		for r := 0; r < n; r++ {
			vals[r] = res[r*nc+ci]
		}
	}
	return dt
}
