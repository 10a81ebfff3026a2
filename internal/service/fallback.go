package service

import (
	"github.com/raphaelgruber/astroname/internal/derive"
	"github.com/raphaelgruber/astroname/internal/models"
)

var fallbackTable = []models.GeneratedName{
	{Name: "Arjun", Meaning: "Bright, shining, white", Origin: "Sanskrit", Gender: models.GenderBoy, Pronunciation: "AR-jun", Popularity: 85},
	{Name: "Aaradhya", Meaning: "Worshipped, blessed", Origin: "Sanskrit", Gender: models.GenderGirl, Pronunciation: "aa-RAADH-ya", Popularity: 78},
	{Name: "Advait", Meaning: "Unique, without a second", Origin: "Sanskrit", Gender: models.GenderBoy, Pronunciation: "ad-VAIT", Popularity: 72},
	{Name: "Ananya", Meaning: "Unique, incomparable", Origin: "Sanskrit", Gender: models.GenderGirl, Pronunciation: "a-NAN-ya", Popularity: 80},
	{Name: "Vivaan", Meaning: "Full of life", Origin: "Sanskrit", Gender: models.GenderBoy, Pronunciation: "vi-VAAN", Popularity: 88},
	{Name: "Saisha", Meaning: "Meaningful life", Origin: "Sanskrit", Gender: models.GenderGirl, Pronunciation: "SAI-sha", Popularity: 65},
}

// fallbackNames returns fresh copies of the curated names matching the preferred gender.
func fallbackNames(p models.Preferences) []models.GeneratedName {
	out := make([]models.GeneratedName, 0, len(fallbackTable))
	for _, n := range fallbackTable {
		if p.Gender == "" || p.Gender == models.GenderUnisex || p.Gender == n.Gender {
			out = append(out, n)
		}
	}
	return out
}

// decorate attaches the birth- and sibling-dependent derivations in place.
func decorate(names []models.GeneratedName, p models.Preferences) []models.GeneratedName {
	var sign string
	if p.HasBirthDate() {
		sign = derive.AstrologySign(p.BirthDate)
	}
	for i := range names {
		if p.HasBirthDate() {
			num := derive.Numerology(names[i].Name)
			s := sign
			names[i].Numerology = &num
			names[i].Astrology = &s
		}
		if p.HasSiblings() {
			match := derive.SiblingCompatible(names[i].Name, p.SiblingNames)
			names[i].SiblingMatch = &match
		}
	}
	return names
}
