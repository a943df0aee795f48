package notion

// Wire types for the pages.create call. Property names match the target
// database's (German) schema, carried over from the mobile client.

type createPageRequest struct {
	Parent     parent         `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type pageProperties struct {
	Title      titleProperty       `json:"Titel"`
	Body       richTextProperty    `json:"Inhalt"`
	Categories multiSelectProperty `json:"Kategorien"`
	Priority   selectProperty      `json:"Priorität"`
	CreatedAt  dateProperty        `json:"Erstellt"`
	Status     selectProperty      `json:"Status"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type richTextProperty struct {
	RichText []richText `json:"rich_text"`
}

type richText struct {
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type multiSelectProperty struct {
	MultiSelect []selectOption `json:"multi_select"`
}

type selectProperty struct {
	Select selectOption `json:"select"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateProperty struct {
	Date dateValue `json:"date"`
}

type dateValue struct {
	Start string `json:"start"`
}

type createPageResponse struct {
	ID string `json:"id"`
}
