// Package constraint provides a director that deduces mines from the numbers
// on the board, and guesses the least likely cell when it can't.
package constraint

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/hanak0/ggsweep/director/random"
	"github.com/hanak0/ggsweep/game"
	"github.com/hanak0/ggsweep/util/collections"
)

// Rounds of splitting observations against each other per move
const simplifyRounds = 4

type Director struct {
	board    *game.Board
	rand     *rand.Rand
	fallback *random.Director

	observations       []*Observation
	observationsByCell map[*game.Cell][]*Observation
	seen               collections.Set[string]
}

// Observation states that exactly numMines of cells hold a mine.
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation *Observation) String() string {
	cellsRepr := make([]string, 0, len(observation.cells))
	for _, cell := range sortedCells(observation.cells) {
		cellsRepr = append(cellsRepr, fmt.Sprintf("(%d, %d)", cell.X(), cell.Y()))
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.X(), observation.origin.Y())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation *Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

// IsCertain reports whether the observation decides every one of its cells.
func (observation *Observation) IsCertain() bool {
	return observation.numMines == 0 || observation.numMines == len(observation.cells)
}

func New(rng *rand.Rand) *Director {
	return &Director{
		rand:     rng,
		fallback: random.New(rng),
	}
}

func (director *Director) Start(board *game.Board) {
	director.board = board
	director.fallback.Start(board)
	director.reset()
}

func (director *Director) reset() {
	director.observations = nil
	director.observationsByCell = make(map[*game.Cell][]*Observation)
	director.seen = collections.NewSet[string]()
}

// Act flags a cell known to hold a mine or opens a cell known to be free. If
// there is no such cell, it opens the cell least likely to be a mine, and
// failing that, a random one.
func (director *Director) Act() (game.CellAction, bool) {
	if director.board == nil || !director.board.CanPlay() {
		return game.CellAction{}, false
	}

	director.observe()

	actors := []func() (game.CellAction, bool){
		director.actDeliberate,
		director.actLowestProbability,
		director.fallback.Act,
	}
	for _, actor := range actors {
		if action, ok := actor(); ok {
			return action, true
		}
	}
	return game.CellAction{}, false
}

// observe rebuilds the observations from the revealed cells of the board.
func (director *Director) observe() {
	director.reset()

	for _, cell := range director.board.Cells() {
		if cell.IsRevealed() {
			director.cellRevealed(cell)
		}
	}

	for i := 0; i < simplifyRounds; i++ {
		director.simplifyObservations()
	}
}

func (director *Director) actDeliberate() (game.CellAction, bool) {
	for _, observation := range director.observations {
		switch {
		case observation.numMines == 0:
			return sortedCells(observation.cells)[0].Click(), true
		case observation.numMines == len(observation.cells):
			return sortedCells(observation.cells)[0].RightClick(), true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) actLowestProbability() (game.CellAction, bool) {
	// A cell is as likely to be a mine as the most pessimistic observation
	// containing it says
	cellProbabilities := make(map[*game.Cell]float64)
	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability > past {
				cellProbabilities[cell] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return game.CellAction{}, false
	}

	lowestProbability := 1.0
	for _, probability := range cellProbabilities {
		if probability < lowestProbability {
			lowestProbability = probability
		}
	}

	var lowestProbabilityCells []*game.Cell
	for _, cell := range director.board.Cells() {
		if probability, ok := cellProbabilities[cell]; ok && probability <= lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}

	return lowestProbabilityCells[director.rand.Intn(len(lowestProbabilityCells))].Click(), true
}

func (director *Director) simplifyObservations() {
	// Observations added in this round are only compared in the next one
	observations := director.observations
	for _, observation := range observations {
		visited := collections.NewSet[*Observation]()

		for _, cell := range sortedCells(observation.cells) {
			for _, intersectingObs := range director.observationsByCell[cell] {
				if intersectingObs == observation || visited.Contains(intersectingObs) {
					continue
				}
				visited.Add(intersectingObs)

				director.splitObservation(observation, intersectingObs)
			}
		}
	}
}

// splitObservation adds what can be deduced about the cells of
// intersectingObs that are not shared with observation.
func (director *Director) splitObservation(observation, intersectingObs *Observation) {
	sharedCells := collections.NewSet[*game.Cell]()
	leftOnlyCells := collections.NewSet[*game.Cell]()
	for cell := range intersectingObs.cells {
		if observation.cells.Contains(cell) {
			sharedCells.Add(cell)
		} else {
			leftOnlyCells.Add(cell)
		}
	}

	if sharedCells.Len() == observation.cells.Len() {
		director.addObservation(&Observation{
			numMines: intersectingObs.numMines - observation.numMines,
			cells:    leftOnlyCells,
		})
		return
	}

	// The shared cells hold at most this many mines, so the rest of
	// intersectingObs holds at least the remainder
	maxSharedMines := min(observation.numMines, sharedCells.Len())
	if occludedMines := intersectingObs.numMines - maxSharedMines; occludedMines == leftOnlyCells.Len() {
		director.addObservation(&Observation{
			numMines: occludedMines,
			cells:    leftOnlyCells,
		})
	}
}

func (director *Director) addObservation(observation *Observation) {
	// Don't add vacuous or contradictory observations
	if observation.cells.Len() == 0 || observation.numMines < 0 || observation.numMines > observation.cells.Len() {
		return
	}

	// Don't add duplicates
	cells := sortedCells(observation.cells)
	key := cellsKey(cells)
	if director.seen.Contains(key) {
		return
	}
	director.seen.Add(key)

	director.observations = append(director.observations, observation)
	for _, cell := range cells {
		director.observationsByCell[cell] = append(director.observationsByCell[cell], observation)
	}
}

func (director *Director) cellRevealed(cell *game.Cell) {
	observation := Observation{
		origin:   cell,
		numMines: cell.NumMines(),
		cells:    collections.NewSet[*game.Cell](),
	}

	for _, neighbor := range cell.Neighbors() {
		if !neighbor.IsRevealed() {
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
			}
		}
	}

	director.addObservation(&observation)
}

func sortedCells(set collections.Set[*game.Cell]) []*game.Cell {
	cells := make([]*game.Cell, 0, set.Len())
	for cell := range set {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Index() < cells[j].Index()
	})
	return cells
}

func cellsKey(cells []*game.Cell) string {
	var key strings.Builder
	for _, cell := range cells {
		fmt.Fprintf(&key, "%d,", cell.Index())
	}
	return key.String()
}
