package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	LessonID  string    `json:"lessonId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Bookmark struct {
	LessonID  string    `json:"lessonId"`
	CreatedAt time.Time `json:"createdAt"`
}
