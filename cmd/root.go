package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/sound"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "chyp8 path/ROM",
	Short:         "Chip-8 emulator using Go",
	Long:          "A Chip-8 emulator written from scratch that mimics the functionalities of a Chip-8, an interpretted language originally written for the COSMIC-VIP/ Telmac 8 bit systems.",
	Args:          cobra.ExactArgs(1),
	RunE:          Start,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chyp8.yaml)")
	flags.IntP("cycles", "c", defaultCycles, "instructions executed per frame")
	flags.IntP("refresh", "r", defaultRefresh, "frames per second")
	flags.IntP("scale", "s", defaultScale, "window pixels per Chip-8 pixel")
	flags.Int64("seed", 0, "random seed, 0 seeds from the clock")
	flags.Bool("trace", false, "log every executed instruction (needs --debug)")
	flags.BoolP("debug", "d", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("mute", false, "disable sound")
	flags.String("sound", "", "mp3 file to play as the buzzer tone")
	flags.Float64("volume", 0, "buzzer volume, every -1 halves it")
	flags.Bool("legacy-shift", false, "8XY6/8XYE shift VY into VX")
	flags.Bool("clip-sprites", true, "clip sprites at the screen edge instead of wrapping")
	flags.Bool("reset-flag", false, "8XY1/8XY2/8XY3 clear VF")
	flags.Bool("increment-index", false, "FX55/FX65 advance I")
	flags.Bool("jump-with-vx", false, "BNNN jumps to VX + NNN")

	bindFlags(viper.GetViper(), rootCmd)
}

// bindFlags binds every persistent flag to its configuration key.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for _, key := range []string{"cycles", "refresh", "scale", "seed", "trace", "debug", "quiet", "mute", "sound", "volume"} {
		cobra.CheckErr(v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)))
	}
	for flag, key := range quirkKeys {
		cobra.CheckErr(v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".chyp8" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chyp8")
	}

	viper.SetEnvPrefix("chyp8")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		cobra.CheckErr(err)
	}
}

// Start loads the ROM and runs the emulator until the window is closed.
func Start(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(viper.GetViper())
	if err != nil {
		return err
	}
	logger := createLogger(s.Debug, s.Quiet)

	emu, err := cpu.NewEMU(s.emuConfig(), logger)
	if err != nil {
		return err
	}
	if err := emu.LoadROM(args[0]); err != nil {
		return err
	}

	var player screen.Player
	if !s.Mute {
		p, err := sound.New(s.Sound, s.Volume)
		if err != nil {
			logger.Error("Sound disabled", err)
		} else {
			player = p
		}
	}

	win, err := screen.New(s.Scale, player)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Emulator started",
		log.Int("cycles", s.Cycles),
		log.Int("refresh", s.Refresh))

	if err := emu.Run(ctx, win); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Emulator stopped", log.Int("faults", emu.Faults()))
	return nil
}
