package game

// XPPerLevel задает фиксированную цену уровня: новый уровень каждые 100 XP.
const XPPerLevel = 100

// LevelOf возвращает уровень для накопленного XP. Отрицательный XP
// трактуется как 0.
func LevelOf(xp int) int {
	if xp < 0 {
		xp = 0
	}

	return xp/XPPerLevel + 1
}

// NextLevelAt возвращает значение XP, с которого начинается следующий уровень.
func NextLevelAt(xp int) int {
	return LevelOf(xp) * XPPerLevel
}

// LevelProgress возвращает прогресс внутри текущего уровня (0..99).
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}

	return xp % XPPerLevel
}
