package main

import (
	"flag"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/renato0307/kubectl-copi/internal/cli"
)

func main() {
	// Keep client-go's klog output off the terminal the picker draws on
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL")
	flag.Set("v", "0")

	// klog registers on the global flag set; none of it is user facing
	pflag.CommandLine = pflag.NewFlagSet("kubectl-copi", pflag.ExitOnError)

	code := cli.Execute()
	klog.Flush()
	os.Exit(code)
}
