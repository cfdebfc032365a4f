package main

import (
	"fmt"
	"os"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/credentials"
	"github.com/synth-tools/synthetics-go/factory"
	"github.com/synth-tools/synthetics-go/logging"
	"github.com/synth-tools/synthetics-go/matcher"
	"github.com/synth-tools/synthetics-go/synthclient"
	"github.com/synth-tools/synthetics-go/synthtest"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	creds, err := credentials.Get(params.profile, params.profileDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Credential error: %s\n", err)
		os.Exit(1)
	}

	var logger logging.Logger
	if params.debug {
		logger = &logging.ConsoleLogger{Dest: os.Stderr, Prefix: "api: "}
	}

	client, err := synthclient.New(creds, synthclient.Opts{
		URL:    params.apiURL,
		Proxy:  params.proxy,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %s\n", err)
		os.Exit(1)
	}

	if err := run(client, params); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(client *synthclient.Client, params commandParams) error {
	switch params.command {
	case "agents":
		agents, err := client.Agents()
		if err != nil {
			return err
		}
		return printMatching(agents, params.match)
	case "tests":
		tests, err := client.Tests()
		if err != nil {
			return err
		}
		wire := make([]ldvalue.Value, 0, len(tests))
		for _, t := range tests {
			wire = append(wire, t.ToWire())
		}
		return printMatching(wire, params.match)
	case "create":
		test, err := factory.Load(params.args[0])
		if err != nil {
			return err
		}
		created, err := client.CreateTest(test)
		if err != nil {
			return err
		}
		fmt.Printf("created test %s (%s)\n", created.ID(), created.Name)
		return nil
	case "pause":
		return client.SetTestStatus(params.args[0], synthtest.TestStatusPaused)
	case "resume":
		return client.SetTestStatus(params.args[0], synthtest.TestStatusActive)
	case "delete":
		return client.DeleteTest(params.args[0])
	}
	return fmt.Errorf("unknown command %q", params.command)
}

func printMatching(items []ldvalue.Value, rule string) error {
	m := matcher.Matcher(nil)
	if rule != "" {
		var err error
		m, err = matcher.New(ldvalue.Parse([]byte(rule)), nil)
		if err != nil {
			return err
		}
	}
	for _, item := range items {
		if m != nil && !m.Match(item) {
			continue
		}
		fmt.Println(item.JSONString())
	}
	return nil
}
