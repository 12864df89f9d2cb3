package transcripts

const transcriptExistsQuery = `
	SELECT 1 FROM transcript
	WHERE video_id = $1
`

const getTranscriptQuery = `
	SELECT video_id, language, segments, fetched_at
	FROM transcript
	WHERE video_id = $1
`

const upsertTranscriptQuery = `
	INSERT INTO transcript (video_id, language, segments, fetched_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (video_id) DO UPDATE SET
		language = EXCLUDED.language,
		segments = EXCLUDED.segments,
		fetched_at = EXCLUDED.fetched_at
`

const deleteTranscriptQuery = `
	DELETE FROM transcript
	WHERE video_id = $1
`

const listStaleQuery = `
	SELECT video_id FROM transcript
	WHERE fetched_at < $1
	ORDER BY fetched_at
`

const countTranscriptsQuery = `
	SELECT COUNT(*) FROM transcript
`
