package exercise

import (
	"context"
	"time"
)

type Exercise struct {
	Key      string
	Name     string
	Summary  string
	Steps    []string
	VideoURL string
}

var Exercises = map[string]Exercise{
	"deep": {
		Key:     "deep",
		Name:    "Deep Breathing",
		Summary: "Sit or stand comfortably with your elbows slightly back to allow full chest expansion.",
		Steps: []string{
			"Take a deep breath and hold it as long as possible.",
			"Exhale slowly and cough strongly.",
			"Repeat for 10 breaths.",
		},
	},
	"pursed": {
		Key:     "pursed",
		Name:    "Pursed Lip Breathing",
		Summary: "Slows your breathing and keeps airways open longer.",
		Steps: []string{
			"Relax your neck and shoulders.",
			"Breathe in through your nose for two counts.",
			"Pucker your lips as if about to whistle.",
			"Breathe out slowly through pursed lips for four counts.",
		},
	},
	"diaphragm": {
		Key:     "diaphragm",
		Name:    "Diaphragmatic Breathing",
		Summary: "Strengthens the diaphragm so breathing takes less effort.",
		Steps: []string{
			"Lie on a flat surface and bend your knees.",
			"Place one hand below your ribs, the other on your chest.",
			"Inhale deeply through your nose.",
			"Tighten your abdominal muscles and exhale slowly through pursed lips.",
			"Repeat for 5-10 minutes, increasing duration gradually.",
		},
	},
	"cough": {
		Key:     "cough",
		Name:    "Controlled Coughing",
		Summary: "Clears mucus from the lungs without exhausting you.",
		Steps: []string{
			"Sit on a chair with both feet on the floor and lean slightly forward.",
			"Fold your arms across your abdomen and breathe in slowly through your nose.",
			"Lean forward, pressing your arms against your abdomen, and cough two or three times with your mouth slightly open.",
			"Breathe in slowly and rest before repeating.",
		},
		VideoURL: "https://www.youtube.com/watch?v=pmJU3osuHSo",
	},
}

func Get(key string) (Exercise, bool) {
	e, ok := Exercises[key]
	return e, ok
}

func List() []Exercise {
	order := []string{"deep", "pursed", "diaphragm", "cough"}
	var result []Exercise
	for _, k := range order {
		result = append(result, Exercises[k])
	}
	return result
}

// Countdown calls tick with the remaining seconds, from seconds down to 0,
// one second apart. It returns ctx.Err() if interrupted.
func Countdown(ctx context.Context, seconds int, tick func(remaining int)) error {
	return countdown(ctx, seconds, time.Second, tick)
}

func countdown(ctx context.Context, seconds int, step time.Duration, tick func(int)) error {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for remaining := seconds; ; remaining-- {
		tick(remaining)
		if remaining <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
