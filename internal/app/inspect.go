package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binding set path is required")
	}
	set, err := s.Bindings.ReadBindings(path)
	if err != nil {
		return InspectResult{}, err
	}

	boards := summarizeBoards(set.Devices)
	var summaries []InspectBoardSummary
	for _, board := range sortedKeys(boards) {
		summary := boards[board]
		sort.Strings(summary.Devices)
		summaries = append(summaries, summary)
	}
	result := InspectResult{
		BindingID: set.ID,
		Platform:  set.Platform,
		CreatedAt: set.CreatedAt,
		Validated: set.Validated,
		Boards:    summaries,
	}
	for _, flipper := range set.Flippers {
		result.Flippers = append(result.Flippers, flipper.Name)
	}
	for _, rule := range set.Autofire {
		result.Autofire = append(result.Autofire, rule.Name)
	}
	sort.Strings(result.Flippers)
	sort.Strings(result.Autofire)
	return result, nil
}

func summarizeBoards(devices []types.DeviceBinding) map[types.BoardID]InspectBoardSummary {
	boards := map[types.BoardID]InspectBoardSummary{}
	for _, device := range devices {
		summary, ok := boards[device.Board]
		if !ok {
			summary = InspectBoardSummary{Board: device.Board, Counts: map[types.DeviceKind]int{}}
		}
		summary.Counts[device.Kind]++
		summary.Devices = append(summary.Devices, types.DeviceRef(device.Kind, device.Name))
		boards[device.Board] = summary
	}
	return boards
}

func sortedKeys[K ~int, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
