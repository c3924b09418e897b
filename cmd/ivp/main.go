package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/ivp/internal/config"
	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/metrics"
	"github.com/san-kum/ivp/internal/problem"
	"github.com/san-kum/ivp/internal/registry"
	"github.com/san-kum/ivp/internal/storage"
	"github.com/san-kum/ivp/internal/viz"
)

var (
	configFile string
	preset     string
	modelName  string
	kindName   string
	integrator string
	workers    int
	sample     int
	plotWidth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ivp",
		Short: "typed initial-value problem descriptions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initSettings(cmd)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("data", ".ivp", "data directory")
	pf.BoolP("verbose", "v", false, "log validation to the console")
	pf.StringVar(&configFile, "config", "", "problem file (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset problem")
	pf.StringVar(&modelName, "model", "", "model (overrides the problem file)")
	pf.StringVar(&kindName, "kind", "", "equation kind (overrides the problem file)")
	pf.StringVar(&integrator, "integrator", "", "integrator stage for splitting phases")
	pf.IntVar(&workers, "workers", 0, "parallel workers, 0 uses the problem file")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "validate every sample of a problem",
		RunE:  runCheck,
	}

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "show roles, traits and side channels of an equation",
		RunE:  runDescribe,
	}

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate bound roles at the initial state of one sample",
		RunE:  runEval,
	}
	evalCmd.Flags().IntVar(&sample, "sample", 0, "sample index")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "invariant diagnostics across ensemble samples",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse ensemble samples interactively",
		RunE:  runBrowse,
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "write a problem manifest to the data directory",
		RunE:  runSave,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved manifests",
		RunE:  listManifests,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models, their equation kinds and integrator stages",
		RunE:  listModels,
	}

	rootCmd.AddCommand(checkCmd, describeCmd, evalCmd, ensembleCmd, browseCmd, saveCmd, listCmd, presetsCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initSettings layers flags over IVP_* environment variables and an
// optional ivp.yaml in the working directory.
func initSettings(cmd *cobra.Command) error {
	viper.SetEnvPrefix("IVP")
	viper.AutomaticEnv()
	viper.SetConfigName("ivp")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return viper.BindPFlags(cmd.Flags())
}

func logger() l.Wrapper {
	if viper.GetBool("verbose") {
		return l.NewConsoleLoggerWrapper()
	}
	return l.NewNopLoggerWrapper()
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		model := modelName
		if model == "" {
			model = config.DefaultModel
		}
		c := config.GetPreset(model, preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset %s for model %s", preset, model)
		}
		copied := *c
		cfg = &copied
	default:
		cfg = config.DefaultConfig()
	}

	if modelName != "" {
		cfg.Model = modelName
	}
	if kindName != "" {
		cfg.Kind = kindName
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, nil
}

func setup() (*registry.Registry, *registry.Setup, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg := registry.NewRegistry()
	s, err := reg.Setup(cfg, problem.WithLogger(logger()))
	if err != nil {
		return nil, nil, err
	}
	return reg, s, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, s, err := setup()
	if err != nil {
		fmt.Println(viz.Status(err))
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s", s.Model.Name(), s.Equation.Kind())))
	failed := 0
	i := 0
	for _, err := range s.Ensemble.All() {
		fmt.Printf("  sample %-4d %s\n", i, viz.Status(err))
		if err != nil {
			failed++
		}
		i++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d samples failed validation", failed, s.Ensemble.NSamples())
	}
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	_, s, err := setup()
	if err != nil {
		return err
	}
	describe(os.Stdout, s)
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	reg, s, err := setup()
	if err != nil {
		return err
	}
	if sample < 0 || sample >= s.Ensemble.NSamples() {
		return fmt.Errorf("sample %d out of range [0, %d)", sample, s.Ensemble.NSamples())
	}
	p, err := s.Ensemble.Problem(sample)
	if err != nil {
		return err
	}
	if err := evaluate(os.Stdout, p); err != nil {
		return err
	}

	if s.Equation.Kind() == equation.KindSODE {
		split, err := reg.Splitting(s, sample)
		if err != nil {
			return err
		}
		q := p.InitialConditions()[equation.KeyQ]
		out := make([]float64, len(q))
		split.Step(out, p.Span()[0], q, p.Step())
		fmt.Println()
		fmt.Println(viz.Field(fmt.Sprintf("step (%d phases)", split.NPhases()), viz.Vector(out)))
	}
	return nil
}

func evaluateTable(s *registry.Setup) (*metrics.Table, error) {
	return metrics.Evaluate(context.Background(), s.Ensemble, s.Config.Workers)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	_, s, err := setup()
	if err != nil {
		return err
	}
	tab, err := evaluateTable(s)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s, %d samples", s.Model.Name(), s.Equation.Kind(), s.Ensemble.NSamples())))
	fmt.Println()
	fmt.Println(viz.Summary(tab))
	for _, name := range tab.Names {
		col, _ := tab.Column(name)
		fmt.Println(viz.Plot(name+" per sample", col, plotWidth, 8))
		fmt.Println()
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	_, s, err := setup()
	if err != nil {
		return err
	}
	tab, err := evaluateTable(s)
	if err != nil {
		return err
	}
	return viz.RunBrowser(viz.NewBrowser(s.Model.Name(), s.Ensemble, tab))
}

func runSave(cmd *cobra.Command, args []string) error {
	_, s, err := setup()
	if err != nil {
		return err
	}
	tab, err := evaluateTable(s)
	if err != nil {
		return err
	}

	st := storage.New(viper.GetString("data"))
	if err := st.Init(); err != nil {
		return err
	}

	m := storage.NewManifest(s.Model.Name(), s.Ensemble)
	m.Integrator = s.Config.Integrator
	m.Metrics = make(map[string]float64, len(tab.Names))
	for _, name := range tab.Names {
		col, _ := tab.Column(name)
		m.Metrics[name] = mean(col)
	}

	id, err := st.Save(m, s.Ensemble)
	if err != nil {
		return err
	}
	fmt.Printf("saved manifest: %s\n", id)
	return nil
}

func listManifests(cmd *cobra.Command, args []string) error {
	st := storage.New(viper.GetString("data"))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no manifests found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tKIND\tTIME\tTSPAN\tSTEP\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			run.ID,
			run.Model,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Span[0], run.Span[1],
			run.Step,
			run.NSamples,
		)
	}

	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := registry.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tKINDS")
	for _, name := range reg.ListModels() {
		m, err := reg.GetModel(name)
		if err != nil {
			return err
		}
		kinds := ""
		for i, k := range m.Kinds() {
			if i > 0 {
				kinds += " "
			}
			kinds += k.String()
		}
		fmt.Fprintf(w, "%s\t%s\n", name, kinds)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nintegrator stages: %v\n", reg.ListStages())
	return nil
}
