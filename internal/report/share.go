package report

import (
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/analysis"
)

// shareAdviceRunes is how much of the forecast advice the share text quotes.
const shareAdviceRunes = 20

// Share renders the short message users paste into chat apps.
func Share(res *analysis.Result, brand Brand) string {
	advice := []rune(res.Forecast.Advice)
	if len(advice) > shareAdviceRunes {
		advice = advice[:shareAdviceRunes]
	}
	a := res.Archetype
	return fmt.Sprintf(`🚀 剛剛在 %s 測了我的生命載具！

👤 駕駛代號：%s
%s
🏎️ 原廠車型：%s
⚙️ 引擎規格：%s
🔥 %d路況：%s...

你的原廠設定是坦克還是跑車？
👇 點擊連結，立刻進廠鑑定：
%s`, brand.Name, res.Birth.DisplayName(), a.Term, a.CarName, a.Spec.Engine,
		res.Forecast.Year, string(advice), brand.URL)
}
