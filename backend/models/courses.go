package models

// Course is a catalog entry. Lessons are sequenced across topics by Order.
type Course struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Language    string     `json:"language" yaml:"language"`
	Flag        string     `json:"flag" yaml:"flag"`
	Level       string     `json:"level" yaml:"level"` // beginner, intermediate, advanced
	Rating      float64    `json:"rating" yaml:"rating"`
	Price       float64    `json:"price" yaml:"price"`
	Description string     `json:"description" yaml:"description"`
	Instructor  string     `json:"instructor" yaml:"instructor"`
	AuthorID    string     `json:"authorId,omitempty" yaml:"authorId,omitempty"`
	Topics      []Topic    `json:"topics" yaml:"topics"`
	Assessment  []Question `json:"assessment,omitempty" yaml:"assessment,omitempty"`
}

type Topic struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

type Lesson struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Order    int    `json:"order" yaml:"order"`
	Duration int    `json:"duration" yaml:"duration"` // minutes
	VideoURL string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
}

// Lessons returns every lesson of the course across all topics, in topic order.
func (c *Course) Lessons() []Lesson {
	var out []Lesson
	for _, t := range c.Topics {
		out = append(out, t.Lessons...)
	}
	return out
}

// FindLesson looks a lesson up by id across all topics.
func (c *Course) FindLesson(id string) (Lesson, bool) {
	for _, t := range c.Topics {
		for _, l := range t.Lessons {
			if l.ID == id {
				return l, true
			}
		}
	}
	return Lesson{}, false
}

// CourseCatalog is the value stored under courses-storage.
type CourseCatalog struct {
	Courses []Course `json:"courses"`
}
