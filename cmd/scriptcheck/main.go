// Command scriptcheck evaluates a scriptSig/scriptPubKey pair against a
// spending transaction and reports whether the combined script accepts,
// with an optional opcode trace. It is an operator-facing entry point
// over the engine library, not part of the consensus core.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btcsuite/btcd/wire"

	"github.com/btcscriptvm/scriptvm/btcadapter"
	"github.com/btcscriptvm/scriptvm/engine"
)

var (
	cfgFile string
	log     = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scriptcheck",
		Short: "Evaluate a Bitcoin scriptSig/scriptPubKey pair",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.scriptcheck.yaml)")
	root.PersistentFlags().String("policy", "standard", "verification policy: standard or mandatory")
	root.PersistentFlags().Bool("trace", false, "print an opcode-by-opcode trace")
	root.PersistentFlags().Bool("genesis", true, "evaluate the UTXO as post-genesis")
	viper.BindPFlag("policy", root.PersistentFlags().Lookup("policy"))
	viper.BindPFlag("trace", root.PersistentFlags().Lookup("trace"))
	viper.BindPFlag("genesis", root.PersistentFlags().Lookup("genesis"))

	root.AddCommand(newVerifyCmd())
	root.AddCommand(newDisasmCmd())
	return root
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".scriptcheck")
		viper.AddConfigPath("$HOME")
	}
	viper.SetEnvPrefix("SCRIPTCHECK")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newVerifyCmd() *cobra.Command {
	var scriptSigHex, scriptPubKeyHex, txHex string
	var inputIndex int
	var value int64

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a scriptSig against a scriptPubKey for one input of a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(scriptSigHex, scriptPubKeyHex, txHex, inputIndex, value)
		},
	}
	cmd.Flags().StringVar(&scriptSigHex, "script-sig", "", "hex-encoded scriptSig")
	cmd.Flags().StringVar(&scriptPubKeyHex, "script-pubkey", "", "hex-encoded scriptPubKey")
	cmd.Flags().StringVar(&txHex, "tx", "", "hex-encoded spending transaction")
	cmd.Flags().IntVar(&inputIndex, "input", 0, "index of the input being verified")
	cmd.Flags().Int64Var(&value, "value", 0, "value in satoshis of the output being spent")
	cmd.MarkFlagRequired("script-sig")
	cmd.MarkFlagRequired("script-pubkey")
	cmd.MarkFlagRequired("tx")
	return cmd
}

func runVerify(scriptSigHex, scriptPubKeyHex, txHex string, inputIndex int, value int64) error {
	scriptSig, err := hex.DecodeString(scriptSigHex)
	if err != nil {
		return fmt.Errorf("decoding script-sig: %w", err)
	}
	scriptPubKey, err := hex.DecodeString(scriptPubKeyHex)
	if err != nil {
		return fmt.Errorf("decoding script-pubkey: %w", err)
	}
	txBytes, err := hex.DecodeString(txHex)
	if err != nil {
		return fmt.Errorf("decoding tx: %w", err)
	}

	var msgTx wire.MsgTx
	if err := msgTx.Deserialize(bytes.NewReader(txBytes)); err != nil {
		return fmt.Errorf("parsing transaction: %w", err)
	}

	genesis := viper.GetBool("genesis")
	flags := engine.StandardVerifyFlags
	if viper.GetString("policy") == "mandatory" {
		flags = engine.MandatoryVerifyFlags
	}

	limits := engine.NewLimits(engine.DefaultPolicy(), genesis, genesis, false)
	tx := btcadapter.NewTx(&msgTx)
	crypto := btcadapter.NewCrypto(log.WithField("cmd", "verify"))

	vm := engine.NewEngine(limits, flags, tx, crypto, inputIndex, value)
	if viper.GetBool("trace") {
		vm.StepCallback = func(step engine.StepInfo) error {
			fmt.Fprintf(os.Stderr, "%-24s stack=%d altstack=%d\n", step.Opcode, len(step.Stack), len(step.AltStack))
			return nil
		}
	}

	ok, err := vm.VerifyScript(btcadapter.Script(scriptSig), btcadapter.Script(scriptPubKey))
	if err != nil {
		log.WithError(err).Error("script verification failed")
		fmt.Println("INVALID")
		return err
	}
	if ok {
		fmt.Println("VALID")
		return nil
	}
	fmt.Println("INVALID")
	return fmt.Errorf("script evaluated to false")
}

func newDisasmCmd() *cobra.Command {
	var scriptHex string
	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble a script to ASM",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(scriptHex)
			if err != nil {
				return fmt.Errorf("decoding script: %w", err)
			}
			fmt.Println(engine.DisasmScript(raw))
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptHex, "script", "", "hex-encoded script")
	cmd.MarkFlagRequired("script")
	return cmd
}
