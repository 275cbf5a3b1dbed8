// Package kanken maps kanken difficulty tiers to display labels.
package kanken

import "strconv"

// Levels lists the idiom quiz levels from easiest to hardest.
var Levels = []float64{5, 4, 3, 2.5, 2, 1.5, 1}

// Unknown is the label for tiers with no table entry.
const Unknown = "不明"

// Labeler renders a tier as a human readable label.
type Labeler interface {
	LabelFor(tier float64) string
}

// LevelLabels renders tiers as kanken grade names ("2級", "準1級").
type LevelLabels struct{}

// LabelFor implements Labeler.
func (LevelLabels) LabelFor(tier float64) string {
	switch tier {
	case 1.5:
		return "準1級"
	case 2.5:
		return "準2級"
	}
	if tier <= 0 || tier != float64(int(tier)) {
		return Unknown
	}
	return strconv.Itoa(int(tier)) + "級"
}

var schoolLabels = map[float64]string{
	10:  "小学1年生",
	9:   "小学2年生",
	8:   "小学3年生",
	7:   "小学4年生",
	6:   "小学5年生",
	5:   "小学6年生",
	4:   "中学生レベル",
	3:   "中学生レベル",
	2.5: "高校生レベル",
	2:   "高校生レベル",
	1.5: "大学・社会人",
	1:   "大学・社会人",
}

// SchoolLabels renders tiers as the school stage where the tier is usually reached.
type SchoolLabels struct{}

// LabelFor implements Labeler.
func (SchoolLabels) LabelFor(tier float64) string {
	if label, ok := schoolLabels[tier]; ok {
		return label
	}
	return Unknown
}
