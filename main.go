package main

import (
	"fmt"
	"strings"

	"github.com/hybridsynth/thsa/examples/thermostat"
	"github.com/hybridsynth/thsa/thsa"
)

func main() {
	fmt.Println("=== Timed Hybrid Automaton Symbolic Abstraction ===")
	fmt.Println("Thermostat example: Off/On modes switching on a temperature threshold")
	fmt.Println()

	clock := thsa.ClockSpec{Active: false}
	model, err := thermostat.Build(clock)
	if err != nil {
		fmt.Printf("build failed: %v\n", err)
		return
	}

	fmt.Printf("States:    %d\n", model.NStates())
	fmt.Printf("Inputs:    %d (%d continuous, %d switching)\n",
		model.NInputs(), model.Inputs().NContinuous(), model.Inputs().NSwitching())
	fmt.Println()

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Println("A cold room switches from Off into On:")

	s, err := model.AbstractState([]float64{17}, 0, thermostat.ModeOff)
	if err != nil {
		fmt.Printf("  lookup failed: %v\n", err)
		return
	}
	switchOn := model.Inputs().GlobalIDOfSwitching(thermostat.TransOffToOn)
	for _, t := range model.Successors(s, switchOn) {
		x, _, k, err := model.ConcreteState(t)
		if err != nil {
			continue
		}
		fmt.Printf("  state %d (17C, Off) -> state %d (~%.1fC, mode %d)\n", s, t, x[0], k)
	}
}
