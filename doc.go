/*
Package grunberg is the game-state core of a single-player dungeon RPG.

It keeps one aggregate GameState (character, inventory, quests, flags, map
exploration and metadata) and changes it only through typed actions applied
by a pure reducer. Every change is announced on an event bus, and the state
can be saved to, loaded from, exported to and imported from a versioned JSON
envelope.

# Concept

The core is split the hexagonal way: the reducer and the domain types know
nothing about storage or transport. Storage is a ports.SaveStore (memory,
file, Redis, BoltDB or SQLite), and the CLI, HTTP server and MCP server are
drivers of the same Game facade.

# Usage

	game := grunberg.New(
		grunberg.WithStore(file.New(".grunberg/saves")),
		grunberg.WithLogger(logger),
	)
	defer game.Close()

	game.On(domain.EventQuestCompleted, events.Func(func(e domain.Event) {
		p := e.Payload.(domain.QuestCompletedPayload)
		game.UpdateCurrency(domain.CurrencyGold, p.Rewards.Gold)
	}))

	game.CreateCharacter(domain.Character{Name: "Aria", Race: domain.RaceElf, Class: domain.ClassMage,
		Stats: domain.RaceBaseStats[domain.RaceElf]})
	game.StartQuest(quest)

Dispatch is serialized. Listeners run synchronously after the new state is
committed, so they may dispatch further actions. Autosave is on by default
and writes the settled state 500ms after the last change.
*/
package grunberg
